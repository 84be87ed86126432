package engagement

import (
	"context"
	"fmt"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/shared/events"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// Availability is the advisory result of an activity check. A denial is not an error.
type Availability struct {
	Allowed bool
	Reason  string
}

// UsageLedger tracks per-day activity completions against plan caps.
type UsageLedger struct {
	store     kvStore
	clock     outbound.ClockPort
	plans     *Resolver
	streak    *StreakTracker
	publisher outbound.EventPublisherPort
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewUsageLedger creates a new daily usage ledger.
func NewUsageLedger(
	store outbound.KeyValuePort,
	clock outbound.ClockPort,
	plans *Resolver,
	streak *StreakTracker,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) *UsageLedger {
	return &UsageLedger{
		store:     kvStore{port: store, metrics: m},
		clock:     clock,
		plans:     plans,
		streak:    streak,
		publisher: publisher,
		metrics:   m,
		logger:    orNop(logger).Named("usage"),
	}
}

// peek returns today's counts without writing. stale is true when the stored
// record is absent, malformed or stamped with another day.
func (u *UsageLedger) peek(ctx context.Context) (counts DailyCounts, stale bool, err error) {
	today := u.clock.Today()

	raw, found, err := u.store.get(ctx, keyDailyCounts)
	if err != nil {
		return DailyCounts{}, false, err
	}
	if !found {
		return NewDailyCounts(today), true, nil
	}

	counts, derr := decodeDailyCounts(raw)
	if derr != nil {
		u.logger.Warn("malformed daily counts, starting fresh", zap.Error(derr))
		return NewDailyCounts(today), true, nil
	}
	if counts.Date != today {
		u.logger.Debug("daily counts belong to another day",
			zap.String("stored_day", counts.Date.String()),
			zap.String("today", today.String()),
		)
		return NewDailyCounts(today), true, nil
	}
	return counts, false, nil
}

// ReadCounts returns today's counts. A missing, malformed or stale record is
// replaced with a zeroed record for today before returning.
func (u *UsageLedger) ReadCounts(ctx context.Context) (DailyCounts, error) {
	counts, stale, err := u.peek(ctx)
	if err != nil {
		return DailyCounts{}, err
	}
	if stale {
		if err := u.WriteCounts(ctx, counts); err != nil {
			return DailyCounts{}, err
		}
		u.metrics.RecordRollover()
	}
	return counts, nil
}

// WriteCounts persists counts verbatim.
func (u *UsageLedger) WriteCounts(ctx context.Context, counts DailyCounts) error {
	raw, err := encodeDailyCounts(counts)
	if err != nil {
		return err
	}
	return u.store.set(ctx, keyDailyCounts, raw)
}

// CanStart checks whether the active plan allows another activity today.
// It never writes.
func (u *UsageLedger) CanStart(ctx context.Context, activity ActivityType) (Availability, error) {
	if !activity.IsValid() {
		return Availability{}, fmt.Errorf("%w: %q", ErrInvalidActivity, string(activity))
	}

	plan, err := u.plans.GetActivePlan(ctx)
	if err != nil {
		return Availability{}, err
	}

	limit := plan.CapFor(activity)
	if limit.IsUnlimited() {
		u.metrics.RecordActivityCheck(activity.String(), true)
		return Availability{Allowed: true}, nil
	}

	counts, _, err := u.peek(ctx)
	if err != nil {
		return Availability{}, err
	}

	used := counts.Get(activity)
	allowed := limit.Allows(used)
	u.metrics.RecordActivityCheck(activity.String(), allowed)
	if !allowed {
		u.logger.Debug("activity cap reached",
			zap.String("activity", activity.String()),
			zap.String("plan_id", plan.ID().String()),
			zap.Int("used", used),
		)
		return Availability{Allowed: false, Reason: fmt.Sprintf("Daily %s limit reached", activity)}, nil
	}
	return Availability{Allowed: true}, nil
}

// RecordCompleted counts one completion for today and touches the streak.
// The plan cap is not enforced here and no points are awarded.
func (u *UsageLedger) RecordCompleted(ctx context.Context, activity ActivityType) error {
	if !activity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivity, string(activity))
	}

	counts, err := u.ReadCounts(ctx)
	if err != nil {
		return err
	}
	counts.Increment(activity)
	if err := u.WriteCounts(ctx, counts); err != nil {
		return err
	}

	u.metrics.RecordCompletion(activity.String())
	publish(ctx, u.publisher, u.logger, events.NewActivityCompletedEvent(
		activity.String(), counts.Date.String(), counts.Get(activity),
	))

	if _, err := u.streak.Touch(ctx); err != nil {
		return err
	}
	return nil
}

// Remaining returns how many activities of the given type are left today.
// unlimited is true when the active plan has no cap. It never writes.
func (u *UsageLedger) Remaining(ctx context.Context, activity ActivityType) (remaining int, unlimited bool, err error) {
	if !activity.IsValid() {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidActivity, string(activity))
	}

	plan, err := u.plans.GetActivePlan(ctx)
	if err != nil {
		return 0, false, err
	}
	counts, _, err := u.peek(ctx)
	if err != nil {
		return 0, false, err
	}

	remaining, capped := plan.CapFor(activity).Remaining(counts.Get(activity))
	return remaining, !capped, nil
}
