package memory

import (
	"context"
	"sync"

	"github.com/bloomcycle/engagement/internal/port/outbound"
)

// kvStore implements outbound.KeyValuePort in process memory.
type kvStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKeyValueStore creates an empty in-memory key-value store.
func NewKeyValueStore() outbound.KeyValuePort {
	return &kvStore{data: make(map[string]string)}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", outbound.ErrKeyNotFound
	}
	return v, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Compile-time check
var _ outbound.KeyValuePort = (*kvStore)(nil)
