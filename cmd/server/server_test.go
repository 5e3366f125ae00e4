package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/counter-api/internal/api"
	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/internal/infrastructure"
	"github.com/JaimeStill/counter-api/internal/sums"
	"github.com/JaimeStill/counter-api/pkg/handlers"
	"github.com/JaimeStill/counter-api/pkg/logging"
	"github.com/JaimeStill/counter-api/pkg/metrics"
	"github.com/JaimeStill/counter-api/pkg/middleware"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.EnvServerPort, "")

	cfg := &config.Config{
		Logging: logging.Config{Level: logging.LevelError},
		Metrics: metrics.Config{Enabled: true},
	}
	cfg.API.CORS.Enabled = true
	cfg.API.CORS.Origins = []string{"http://client.test"}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func testHandler(t *testing.T) (http.Handler, *infrastructure.Infrastructure) {
	t.Helper()
	cfg := testConfig(t)

	infra := infrastructure.New(cfg)
	infra.Logger = logging.Discard()

	handler, err := buildHandler(infra, cfg)
	if err != nil {
		t.Fatalf("buildHandler() error = %v", err)
	}
	return handler, infra
}

func serve(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	h, _ := testHandler(t)

	w := serve(h, http.MethodGet, "/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body api.Info
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Counter API is running!" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Endpoints["POST /sum"] == "" {
		t.Errorf("endpoints = %v, want POST /sum described", body.Endpoints)
	}
}

func TestSum_ThroughStack(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"sum", "/sum", `{"numbers":[1,2,3]}`, 200, `{"numbers":[1,2,3],"sum":6,"count":3}`},
		{"trailing slash", "/sum/", `{"numbers":[-5,5]}`, 200, `{"numbers":[-5,5],"sum":0,"count":2}`},
		{"empty", "/sum", `{"numbers":[]}`, 200, `{"numbers":[],"sum":0,"count":0}`},
		{"not array", "/sum", `{"numbers":"5"}`, 400, `{"error":"Invalid input. Please send a JSON object with a \"numbers\" array."}`},
		{"bad element", "/sum", `{"numbers":[1,null]}`, 400, `{"error":"All elements in the numbers array must be valid numbers."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, http.MethodPost, tt.path, "application/json", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestSum_MalformedJSON(t *testing.T) {
	h, _ := testHandler(t)

	w := serve(h, http.MethodPost, "/sum", "application/json", `{"numbers":`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp handlers.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != sums.FailureSummary || resp.Message == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestNotFound(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/sum"},
		{http.MethodPost, "/unknown"},
		{http.MethodPut, "/"},
		{http.MethodPost, "/Sum"},
		{http.MethodDelete, "/healthz"},
		{http.MethodPost, "/metrics"},
		{http.MethodDelete, "/metrics"},
		{http.MethodGet, "/metrics/x"},
		{http.MethodPost, "/./sum"},
		{http.MethodPost, "/docs/../sum"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(h, tt.method, tt.path, "", "")

			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
			}

			var resp handlers.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != api.NotFoundError || resp.Message != api.NotFoundMessage {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestRecoverBoundary(t *testing.T) {
	infra := infrastructure.New(testConfig(t))
	infra.Logger = logging.Discard()

	mw := middleware.New()
	mw.Use(middleware.Recover(infra.Logger, api.Failure))
	h := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("router exploded")
	}))

	w := serve(h, http.MethodGet, "/", "", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp handlers.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != api.FailureError || resp.Message != "router exploded" {
		t.Errorf("response = %+v", resp)
	}
}

func TestOperationalRoutes(t *testing.T) {
	h, infra := testHandler(t)

	if w := serve(h, http.MethodGet, "/healthz", "", ""); w.Code != 200 || w.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}

	if w := serve(h, http.MethodGet, "/docs/", "", ""); w.Code != 200 || !strings.Contains(w.Body.String(), "/openapi.json") {
		t.Errorf("docs = %d", w.Code)
	}

	if w := serve(h, http.MethodGet, "/readyz", "", ""); w.Code != 503 || w.Body.String() != "NOT READY" {
		t.Errorf("readyz before startup = %d %q", w.Code, w.Body.String())
	}

	infra.Lifecycle.WaitForStartup()
	if w := serve(h, http.MethodGet, "/readyz", "", ""); w.Code != 200 || w.Body.String() != "READY" {
		t.Errorf("readyz after startup = %d %q", w.Code, w.Body.String())
	}
}

func TestOpenAPIDocument(t *testing.T) {
	h, _ := testHandler(t)

	w := serve(h, http.MethodGet, "/openapi.json", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.1.0" {
		t.Errorf("openapi = %q, want 3.1.0", doc.OpenAPI)
	}
	for _, path := range []string{"/", "/sum"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("paths missing %q", path)
		}
	}
}

func TestMetricsExposed(t *testing.T) {
	h, _ := testHandler(t)

	serve(h, http.MethodPost, "/sum", "application/json", `{"numbers":[1,2]}`)
	serve(h, http.MethodPost, "/sum", "application/json", `{"numbers":[true]}`)

	w := serve(h, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, want := range []string{
		`counter_api_http_requests_total{method="POST",route="/sum",status="200"} 1`,
		`counter_api_sum_rejections_total{reason="invalid_number"} 1`,
		`counter_api_sum_elements_count 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetrics_RouteLabels(t *testing.T) {
	h, _ := testHandler(t)

	serve(h, http.MethodGet, "/", "", "")
	serve(h, http.MethodGet, "/metrics/abc123", "", "")
	serve(h, http.MethodPost, "/./sum", "application/json", `{"numbers":[1]}`)
	serve(h, http.MethodGet, "/metrics", "", "")

	body := serve(h, http.MethodGet, "/metrics", "", "").Body.String()

	for _, want := range []string{
		`counter_api_http_requests_total{method="GET",route="/",status="200"} 1`,
		`counter_api_http_requests_total{method="GET",route="/metrics",status="200"} 1`,
		`counter_api_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`counter_api_http_requests_total{method="POST",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
	for _, unwanted := range []string{`route="/metrics/abc123"`, `route="/./sum"`} {
		if strings.Contains(body, unwanted) {
			t.Errorf("metrics should not label by raw path, found %s", unwanted)
		}
	}
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/sum", nil)
	req.Header.Set("Origin", "http://client.test")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://client.test" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}
}

func getAvailablePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("find available port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func TestServer_StartShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = getAvailablePort(t)

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	base := fmt.Sprintf("http://%s", cfg.Server.Addr())

	deadline := time.Now().Add(2 * time.Second)
	for !srv.infra.Lifecycle.Ready() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Post(base+"/sum", "application/json", strings.NewReader(`{"numbers":[2,3]}`))
	if err != nil {
		t.Fatalf("POST /sum: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if want := `{"numbers":[2,3],"sum":5,"count":2}`; strings.TrimSpace(string(data)) != want {
		t.Errorf("body = %s, want %s", data, want)
	}

	if err := srv.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get(base + "/healthz"); err == nil {
		t.Error("server should not accept requests after shutdown")
	}
}

func TestServer_StartPortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = listener.Addr().(*net.TCPAddr).Port

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(); err == nil {
		srv.Shutdown(time.Second)
		t.Error("Start() should fail when the port is taken")
	}
}
