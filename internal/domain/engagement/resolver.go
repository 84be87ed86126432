package engagement

import (
	"context"
	"fmt"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/shared/events"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// Resolver determines which plan is currently active.
type Resolver struct {
	store     kvStore
	publisher outbound.EventPublisherPort
	logger    *zap.Logger
}

// NewResolver creates a new entitlement resolver.
func NewResolver(
	store outbound.KeyValuePort,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		store:     kvStore{port: store, metrics: m},
		publisher: publisher,
		logger:    orNop(logger).Named("entitlement"),
	}
}

// GetActivePlanID returns the persisted plan id, or free when nothing valid is stored.
func (r *Resolver) GetActivePlanID(ctx context.Context) (PlanID, error) {
	raw, found, err := r.store.get(ctx, keyActivePlanID)
	if err != nil {
		return "", err
	}
	if !found || raw == "" {
		return PlanFree, nil
	}
	id := PlanID(raw)
	if !id.IsValid() {
		r.logger.Warn("stored plan id is not in the catalog, falling back to free",
			zap.String("stored", raw),
		)
		return PlanFree, nil
	}
	return id, nil
}

// SetActivePlanID overwrites the active plan unconditionally.
func (r *Resolver) SetActivePlanID(ctx context.Context, id PlanID) error {
	if !id.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlan, string(id))
	}
	if err := r.store.set(ctx, keyActivePlanID, id.String()); err != nil {
		return err
	}

	r.logger.Info("active plan changed", zap.String("plan_id", id.String()))
	publish(ctx, r.publisher, r.logger, events.NewPlanSelectedEvent(id.String()))
	return nil
}

// GetActivePlan returns the catalog entry of the active plan.
func (r *Resolver) GetActivePlan(ctx context.Context) (*Plan, error) {
	id, err := r.GetActivePlanID(ctx)
	if err != nil {
		return nil, err
	}
	return LookupPlan(id), nil
}
