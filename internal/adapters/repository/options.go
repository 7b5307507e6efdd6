package repository

import (
	"time"

	"github.com/okian/prospectboard/pkg/logger"
)

// Option applies a configuration option to the SnapshotCache.
type Option func(*SnapshotCache)

// WithTTL sets the cache window.
func WithTTL(ttl time.Duration) Option {
	return func(c *SnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source used to stamp and age snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *SnapshotCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator injects the snapshot id generator.
func WithIDGenerator(next func() string) Option {
	return func(c *SnapshotCache) {
		if next != nil {
			c.nextID = next
		}
	}
}

// WithLogger sets a custom logger for the cache.
func WithLogger(l logger.Logger) Option {
	return func(c *SnapshotCache) {
		if l != nil {
			c.logger = l
		}
	}
}
