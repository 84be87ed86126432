//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bloomcycle/engagement/internal/domain/engagement"
	"github.com/bloomcycle/engagement/internal/infra/config"
	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/shared/events"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Store    outbound.KeyValuePort
	Clock    outbound.ClockPort
	EventBus *events.Bus

	// Domains
	EngagementDomain engagement.EngagementDomain
}

// InitializeDependencies creates all dependencies using Wire.
func InitializeDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil, nil
}
