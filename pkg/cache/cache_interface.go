package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer. Implementations are
// swappable (Redis, in-memory). The cache is never the source of
// truth; misses always fall through to the repository.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// found = false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
