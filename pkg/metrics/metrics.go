// Package metrics collects Prometheus metrics for HTTP traffic and sum
// computations and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/counter-api/pkg/middleware"
)

// unmatchedRoute labels requests that matched no route or ended in 404.
const unmatchedRoute = "unmatched"

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	elements   prometheus.Histogram
	rejections *prometheus.CounterVec
}

// New creates the collectors under cfg.Namespace and registers them, together
// with the Go runtime and process collectors, on a fresh registry.
func New(cfg *Config) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		elements: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "sum",
			Name:      "elements",
			Help:      "Number of elements in successfully summed arrays.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "sum",
			Name:      "rejections_total",
			Help:      "Sum requests rejected by validation, by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.elements,
		m.rejections,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// Middleware records request count and latency for every request, labelled
// by the route pattern the router matched. Requests reaching a plain
// ServeMux fall back to its r.Pattern.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := middleware.NewStatusWriter(w)
			tracked, matched := middleware.TrackRoute(r)

			next.ServeHTTP(sw, tracked)

			route := matched()
			if route == "" && tracked.Pattern != "" {
				route = middleware.RoutePath(tracked.Pattern)
			}
			if route == "" || sw.Status() == http.StatusNotFound {
				route = unmatchedRoute
			}

			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.Status())).Inc()
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// ObserveSum records a successful sum over count elements.
func (m *Metrics) ObserveSum(count int) {
	m.elements.Observe(float64(count))
}

// ObserveRejection records a validation rejection.
func (m *Metrics) ObserveRejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}
