// Package cache stores rendered layout artifacts so repeated renders of the
// same placement skip Graphviz and rsvg-convert.
//
// Keys are built with [ArtifactKey] from a hash of the placement JSON and
// the render options. A [NullCache] disables caching; a [FileCache] keeps
// entries on disk for the CLI.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for storage
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
