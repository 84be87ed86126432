package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bloomcycle/engagement/internal/domain/engagement"
	"github.com/bloomcycle/engagement/internal/infra/config"
	"github.com/bloomcycle/engagement/internal/shared/events"
)

// App owns the engagement engine and the resources behind it.
type App struct {
	deps    *Dependencies
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	deps.Logger.Info("engagement engine ready",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("timezone", cfg.Engagement.Timezone),
		zap.String("today", deps.Clock.Today().String()),
	)

	return &App{deps: deps, cleanup: cleanup}, nil
}

// Engagement returns the engagement domain.
func (a *App) Engagement() engagement.EngagementDomain {
	return a.deps.EngagementDomain
}

// Events returns the event bus so callers can subscribe to engagement events.
func (a *App) Events() *events.Bus {
	return a.deps.EventBus
}

// Registry returns the registry engagement metrics are registered against.
func (a *App) Registry() prometheus.Gatherer {
	return a.deps.Registry
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop releases storage connections and flushes logs.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}

	// Sync zap logger
	if a.deps.Logger != nil {
		_ = a.deps.Logger.Sync()
	}
}
