package redis

import (
	"context"
	"errors"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/redis/go-redis/v9"
)

const kvKeyPrefix = "engagement:"

// kvStore implements outbound.KeyValuePort on Redis strings.
type kvStore struct {
	client    redis.UniversalClient
	namespace string
}

// NewKeyValueStore creates a Redis-backed key-value store.
// Keys are stored as engagement:<namespace>:<key>.
func NewKeyValueStore(client redis.UniversalClient, namespace string) outbound.KeyValuePort {
	return &kvStore{client: client, namespace: namespace}
}

func (s *kvStore) redisKey(key string) string {
	return kvKeyPrefix + s.namespace + ":" + key
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", outbound.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	// Engagement state is durable; no expiry.
	return s.client.Set(ctx, s.redisKey(key), value, 0).Err()
}

// Compile-time check
var _ outbound.KeyValuePort = (*kvStore)(nil)
