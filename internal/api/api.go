// Package api assembles the public HTTP API: the informational root, the sum
// endpoint, the OpenAPI document, and the JSON error fallbacks.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/internal/infrastructure"
	"github.com/JaimeStill/counter-api/pkg/module"
	"github.com/JaimeStill/counter-api/pkg/openapi"
)

// Register adds the API routes to router, serves their OpenAPI document at
// /openapi.json, and installs the JSON not-found handler. The document is
// also written to cfg.API.OpenAPI.Output when set.
func Register(router *module.Router, cfg *config.Config, infra *infrastructure.Infrastructure) error {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	registerRoutes(router, spec, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return err
	}
	if path := cfg.API.OpenAPI.Output; path != "" {
		if err := openapi.WriteJSON(spec, path); err != nil {
			return fmt.Errorf("write openapi document: %w", err)
		}
	}
	router.HandleNative("GET /openapi.json", openapi.ServeSpec(specBytes))
	router.NotFound(http.HandlerFunc(NotFound))

	return nil
}
