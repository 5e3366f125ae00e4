package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/internal/infrastructure"
	"github.com/JaimeStill/counter-api/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	handler http.Handler
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra := infrastructure.New(cfg)

	handler, err := buildHandler(infra, cfg)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		infra:   infra,
		handler: handler,
		http:    server.New(&cfg.Server, cfg.Domain, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
// Readiness is reported asynchronously when every startup hook finishes.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

// buildHandler assembles the router and wraps it with the middleware stack.
func buildHandler(infra *infrastructure.Infrastructure, cfg *config.Config) (http.Handler, error) {
	router, err := buildRouter(infra, cfg)
	if err != nil {
		return nil, err
	}
	return buildMiddleware(infra, cfg).Apply(router), nil
}
