package outbound

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValuePort.Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KeyValuePort defines the durable string key/value store the engagement state lives in.
// Values survive process restarts. No transactions are required.
type KeyValuePort interface {
	// Get reads the value stored under key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}
