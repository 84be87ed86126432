package engagement

import (
	"context"
	"strconv"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/shared/events"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// PointsLedger keeps the running reward point balance.
type PointsLedger struct {
	store     kvStore
	publisher outbound.EventPublisherPort
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewPointsLedger creates a new points ledger.
func NewPointsLedger(
	store outbound.KeyValuePort,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PointsLedger {
	return &PointsLedger{
		store:     kvStore{port: store, metrics: m},
		publisher: publisher,
		metrics:   m,
		logger:    orNop(logger).Named("points"),
	}
}

// GetPoints returns the balance. Absent or malformed balances read as 0.
func (l *PointsLedger) GetPoints(ctx context.Context) (int64, error) {
	raw, found, err := l.store.get(ctx, keyPointsTotal)
	if err != nil {
		return 0, err
	}
	if !found || raw == "" {
		return 0, nil
	}
	total, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		l.logger.Warn("malformed points total, treating as zero",
			zap.String("stored", raw),
			zap.Error(perr),
		)
		return 0, nil
	}
	return total, nil
}

// AddPoints adds amount to the balance and returns the new total.
// Amounts are not validated; callers award non-negative amounts.
func (l *PointsLedger) AddPoints(ctx context.Context, amount int64) (int64, error) {
	current, err := l.GetPoints(ctx)
	if err != nil {
		return 0, err
	}
	total := current + amount
	if err := l.store.set(ctx, keyPointsTotal, strconv.FormatInt(total, 10)); err != nil {
		return 0, err
	}

	l.metrics.RecordPointsAwarded(amount, total)
	l.logger.Debug("points added", zap.Int64("amount", amount), zap.Int64("total", total))
	publish(ctx, l.publisher, l.logger, events.NewPointsAwardedEvent(amount, total))
	return total, nil
}
