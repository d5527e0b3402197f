package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value backend.
//
// Implementations must be safe for concurrent readers. Writes are not
// grouped into transactions; each Put stands alone.
type KV interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// PutIfAbsent stores value only if key does not exist yet.
	// It reports whether the value was written.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// Keys returns all keys with the given prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}
