package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	// Domains
	"github.com/bloomcycle/engagement/internal/domain/engagement"

	// Ports
	"github.com/bloomcycle/engagement/internal/port/outbound"

	// Outbound adapters
	"github.com/bloomcycle/engagement/internal/adapter/outbound/clock"
	"github.com/bloomcycle/engagement/internal/adapter/outbound/memory"
	"github.com/bloomcycle/engagement/internal/adapter/outbound/postgres"
	redisadapter "github.com/bloomcycle/engagement/internal/adapter/outbound/redis"

	// Infrastructure
	"github.com/bloomcycle/engagement/internal/infra/cache"
	"github.com/bloomcycle/engagement/internal/infra/config"
	"github.com/bloomcycle/engagement/internal/infra/database"
	"github.com/bloomcycle/engagement/internal/model"
	"github.com/bloomcycle/engagement/internal/shared/events"

	// Utils
	"github.com/bloomcycle/engagement/internal/utils/logger"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
)

const storageConnectTimeout = 5 * time.Second

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideZapLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideKeyValueStore,
	ProvideClock,
	ProvideEventBus,
	wire.Bind(new(outbound.EventPublisherPort), new(*events.Bus)),
)

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideRegistry creates the private metrics registry the host app gathers from.
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics creates a metrics instance. Returns nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace, reg)
}

// ProvideKeyValueStore opens the configured storage backend.
func ProvideKeyValueStore(cfg *config.Config, zapLog *zap.Logger) (outbound.KeyValuePort, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		zapLog.Info("using in-memory engagement storage")
		return memory.NewKeyValueStore(), func() {}, nil

	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), storageConnectTimeout)
		defer cancel()
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis: %w", err)
		}
		zapLog.Info("using redis engagement storage",
			zap.String("address", cfg.Redis.Address),
			zap.String("namespace", cfg.Storage.Namespace),
		)
		cleanup := func() {
			if err := cache.Close(client); err != nil {
				zapLog.Warn("failed to close redis client", zap.Error(err))
			}
		}
		return redisadapter.NewKeyValueStore(client, cfg.Storage.Namespace), cleanup, nil

	case config.DriverPostgres:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("init database: %w", err)
		}
		if err := database.Migrate(db, &model.KeyValueEntry{}); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		zapLog.Info("using postgres engagement storage",
			zap.String("host", cfg.Database.Host),
			zap.String("namespace", cfg.Storage.Namespace),
		)
		cleanup := func() {
			if err := database.Close(db); err != nil {
				zapLog.Warn("failed to close database", zap.Error(err))
			}
		}
		return postgres.NewKeyValueStore(db, cfg.Storage.Namespace), cleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// ProvideClock creates the calendar clock in the configured time zone.
func ProvideClock(cfg *config.Config) (outbound.ClockPort, error) {
	loc, err := cfg.Engagement.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewSystemClock(loc), nil
}

// ProvideEventBus creates the in-process event bus.
func ProvideEventBus(zapLog *zap.Logger) *events.Bus {
	return events.NewBus(zapLog.Named("events"))
}

// ===== Engagement Domain Providers =====

// EngagementSet provides engagement domain dependencies.
var EngagementSet = wire.NewSet(
	engagement.NewEngagementDomain,
)

// AppSet is the master provider set that includes all dependencies.
var AppSet = wire.NewSet(
	InfraSet,
	EngagementSet,
)
