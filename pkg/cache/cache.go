// Package cache provides content-addressed caching for pipeline stages.
//
// Three backends implement the Cache interface:
//   - FileCache: XDG cache directory storage for CLI usage
//   - RedisCache: shared cache for batch/farm deployments
//   - NullCache: caching disabled
//
// Keys are derived from SHA-256 hashes of stage inputs (see Keyer), so a
// cache entry is valid for exactly one design + option combination and
// never needs invalidation beyond its TTL.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Designs and results are pure functions of their
// inputs, so long TTLs are safe; artifacts are larger and expire sooner.
const (
	TTLDesign   = 30 * 24 * time.Hour
	TTLResult   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
