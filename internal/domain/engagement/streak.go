package engagement

import (
	"context"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/shared/events"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// StreakState is the persisted streak. A zero LastActiveDate means never touched.
type StreakState struct {
	LastActiveDate civil.Date
	Count          int
}

// HasActivity reports whether the streak was ever touched.
func (s StreakState) HasActivity() bool {
	return !s.LastActiveDate.IsZero()
}

// StreakTracker maintains the consecutive-day activity streak.
type StreakTracker struct {
	store     kvStore
	clock     outbound.ClockPort
	publisher outbound.EventPublisherPort
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewStreakTracker creates a new streak tracker.
func NewStreakTracker(
	store outbound.KeyValuePort,
	clock outbound.ClockPort,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StreakTracker {
	return &StreakTracker{
		store:     kvStore{port: store, metrics: m},
		clock:     clock,
		publisher: publisher,
		metrics:   m,
		logger:    orNop(logger).Named("streak"),
	}
}

// State reads the persisted streak. Malformed values are treated as absent.
func (t *StreakTracker) State(ctx context.Context) (StreakState, error) {
	var state StreakState

	rawDate, found, err := t.store.get(ctx, keyLastActiveDate)
	if err != nil {
		return StreakState{}, err
	}
	if found && rawDate != "" {
		day, perr := civil.ParseDate(rawDate)
		if perr != nil {
			t.logger.Warn("malformed last active date, treating as absent",
				zap.String("stored", rawDate),
				zap.Error(perr),
			)
		} else {
			state.LastActiveDate = day
		}
	}

	rawCount, found, err := t.store.get(ctx, keyStreakCount)
	if err != nil {
		return StreakState{}, err
	}
	if found && rawCount != "" {
		n, perr := strconv.Atoi(rawCount)
		if perr != nil || n < 0 {
			t.logger.Warn("malformed streak count, treating as zero",
				zap.String("stored", rawCount),
			)
		} else {
			state.Count = n
		}
	}

	return state, nil
}

// GetStreak returns the stored streak count without touching it.
// A streak is not decayed on read; a stale streak still reports its last value.
func (t *StreakTracker) GetStreak(ctx context.Context) (int, error) {
	state, err := t.State(ctx)
	if err != nil {
		return 0, err
	}
	return state.Count, nil
}

// Touch records activity for today and returns the resulting streak count.
//
// Same day is a no-op unless the stored count is missing or malformed, in which
// case it is repaired to 1. A gap of exactly one day extends the streak, anything
// longer restarts it at 1. A today earlier than the stored day is left alone.
func (t *StreakTracker) Touch(ctx context.Context) (int, error) {
	today := t.clock.Today()

	state, err := t.State(ctx)
	if err != nil {
		return 0, err
	}

	next, reset := advance(state, today)
	switch {
	case state.HasActivity() && today.Before(state.LastActiveDate):
		t.logger.Warn("clock is behind last active date, streak left unchanged",
			zap.String("today", today.String()),
			zap.String("last_active", state.LastActiveDate.String()),
		)
	case !state.HasActivity() || today.After(state.LastActiveDate) || next != state.Count:
		if err := t.store.set(ctx, keyLastActiveDate, today.String()); err != nil {
			return 0, err
		}
		if err := t.store.set(ctx, keyStreakCount, strconv.Itoa(next)); err != nil {
			return 0, err
		}
	}

	t.metrics.SetStreak(next)
	if next != state.Count {
		t.logger.Info("streak advanced",
			zap.String("day", today.String()),
			zap.Int("previous", state.Count),
			zap.Int("current", next),
			zap.Bool("reset", reset),
		)
		publish(ctx, t.publisher, t.logger, events.NewStreakAdvancedEvent(today.String(), state.Count, next, reset))
	}
	return next, nil
}

// advance computes the streak count after a touch on today.
// reset is true when a gap of two or more days restarted the streak.
// A touched streak never counts below 1 on or after its last active day.
func advance(state StreakState, today civil.Date) (next int, reset bool) {
	if !state.HasActivity() {
		return 1, false
	}
	gap := today.DaysSince(state.LastActiveDate)
	switch {
	case gap < 0:
		return state.Count, false
	case gap == 0:
		if state.Count < 1 {
			return 1, false
		}
		return state.Count, false
	case gap == 1:
		return state.Count + 1, false
	default:
		return 1, true
	}
}
