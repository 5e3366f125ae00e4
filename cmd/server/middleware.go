package main

import (
	"github.com/JaimeStill/counter-api/internal/api"
	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/internal/infrastructure"
	"github.com/JaimeStill/counter-api/pkg/middleware"
)

// buildMiddleware creates the middleware stack, outermost first.
// Recover sits inside RequestID so recovered failures carry the id.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.RequestID())
	middlewareSys.Use(middleware.Recover(infra.Logger, api.Failure))
	middlewareSys.Use(middleware.TrimSlash())
	middlewareSys.Use(infra.Metrics.Middleware())
	middlewareSys.Use(middleware.Logger(infra.Logger))
	middlewareSys.Use(middleware.CORS(&cfg.API.CORS))
	return middlewareSys
}
