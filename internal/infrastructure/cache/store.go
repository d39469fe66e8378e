// Package cache provides the key/value stores behind the order status cache.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-key expiry
type Store interface {
	// Get returns the value under key; ok is false on a miss or an expired entry
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key for ttl. A non-positive ttl keeps it until evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases the store's resources
	Close() error
}
