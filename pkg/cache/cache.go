// Package cache stores encoded tile batches between runs.
//
// The pipeline runner serializes each generated batch to JSON and stores it
// under a key derived from everything that determines the batch: tile count,
// tier, seed and configuration. A later request with the same inputs replays
// the stored batch instead of drawing again.
//
// # Backends
//
//   - [NullCache] disables caching.
//   - [FileCache] keeps entries as JSON files, for the CLI.
//   - [RedisCache] shares entries through Redis, for the HTTP host.
//   - [MongoCache] keeps entries in a MongoDB collection with a TTL index.
//
// # Keys
//
// A [Keyer] builds cache keys. [ScopedKeyer] prefixes another keyer's keys so
// several hosts can share one backend without collisions.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with (nil, false, nil). Set with ttl <= 0 stores the
// entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
