package main

import (
	"net/http"

	"github.com/JaimeStill/counter-api/internal/api"
	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/internal/infrastructure"
	"github.com/JaimeStill/counter-api/pkg/lifecycle"
	"github.com/JaimeStill/counter-api/pkg/module"
	"github.com/JaimeStill/counter-api/pkg/routes"
	"github.com/JaimeStill/counter-api/web/docs"
)

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) (*module.Router, error) {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", readiness(infra.Lifecycle))

	if cfg.Metrics.Enabled {
		metricsModule := module.New("/metrics", infra.Metrics.Handler())
		metricsModule.Use(module.RootOnly(http.MethodGet, http.HandlerFunc(api.NotFound)))
		router.Mount(metricsModule)
	}

	routes.Register(router, "", nil, docs.Routes())

	if err := api.Register(router, cfg, infra); err != nil {
		return nil, err
	}

	return router, nil
}

func readiness(rc lifecycle.ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
