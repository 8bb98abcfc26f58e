// Package cache stores rendered artifacts keyed by the configuration that
// produced them.
//
// Backends implementing [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared storage for the HTTP server
//   - [MongoCache]: durable storage for the HTTP server
//   - [Tiered]: a fast backend in front of a durable one
//
// Keys come from a [Keyer]; [ScopedKeyer] namespaces them.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Rendering is
// deterministic, so entries never go stale; the TTL only bounds disk use.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
