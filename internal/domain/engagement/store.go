package engagement

import (
	"context"
	"errors"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	apperrors "github.com/bloomcycle/engagement/internal/utils/errors"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// kvStore wraps the key-value port with the storage error taxonomy.
type kvStore struct {
	port    outbound.KeyValuePort
	metrics *metrics.Metrics
}

// get returns the raw value under key. found is false when the key was never written.
func (s kvStore) get(ctx context.Context, key string) (value string, found bool, err error) {
	value, err = s.port.Get(ctx, key)
	if err != nil {
		if errors.Is(err, outbound.ErrKeyNotFound) {
			return "", false, nil
		}
		s.metrics.RecordStorageError("get")
		return "", false, apperrors.StorageUnavailable("get "+key, err)
	}
	return value, true, nil
}

func (s kvStore) set(ctx context.Context, key, value string) error {
	if err := s.port.Set(ctx, key, value); err != nil {
		s.metrics.RecordStorageError("set")
		return apperrors.StorageUnavailable("set "+key, err)
	}
	return nil
}

// publish sends an event and logs failures. Publishing never fails the caller.
func publish(ctx context.Context, publisher outbound.EventPublisherPort, logger *zap.Logger, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", zap.Error(err))
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
