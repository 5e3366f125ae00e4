// Package infrastructure provides core service initialization for application startup.
// It assembles the common dependencies (lifecycle, logging, metrics) that domain systems require.
package infrastructure

import (
	"log/slog"

	"github.com/JaimeStill/counter-api/internal/config"
	"github.com/JaimeStill/counter-api/pkg/lifecycle"
	"github.com/JaimeStill/counter-api/pkg/logging"
	"github.com/JaimeStill/counter-api/pkg/metrics"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// New creates an Infrastructure from the application configuration.
// Metrics are always collected; cfg.Metrics.Enabled only controls whether
// they are exposed over HTTP.
func New(cfg *config.Config) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging),
		Metrics:   metrics.New(&cfg.Metrics),
	}
}

// Start registers infrastructure startup hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnStartup(func() {
		i.Logger.Debug("infrastructure ready")
	})
	return nil
}
