// Package cache provides the caching layer for generated board artifacts.
//
// Layout plans, routing plans and rendered files are cached under keys
// derived from the full request (config hash plus planner options), so a
// repeated generate request with identical inputs never replans. Backends:
// a file cache for CLI usage, Redis for the server, and a null cache for
// tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
