// Package repository serves roster snapshots from a data source through a
// time-bounded cache.
package repository

import (
	"context"
	"time"

	"github.com/okian/prospectboard/internal/domain/model"
)

// Snapshot is an immutable, sorted roster together with the moment it was
// produced. Callers must not modify Roster.
type Snapshot struct {
	ID         string
	Roster     model.Roster
	ProducedAt time.Time
	Source     string
}

// Empty reports whether the snapshot was never populated.
func (s Snapshot) Empty() bool { return s.ID == "" }

// CacheStats reports cache effectiveness counters.
type CacheStats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Refreshes   uint64 `json:"refreshes"`
	Failures    uint64 `json:"failures"`
	StaleServes uint64 `json:"stale_serves"`
}

// Store provides access to the current roster snapshot.
type Store interface {
	// Roster returns the cached snapshot, reloading it from the source when
	// it is missing or older than the cache window.
	Roster(ctx context.Context) (Snapshot, error)

	// Current returns the held snapshot without loading or counting a hit
	// or miss. The bool is false when nothing is cached.
	Current() (Snapshot, bool)

	// Refresh reloads from the source regardless of age.
	Refresh(ctx context.Context) (Snapshot, error)

	// Invalidate drops the cached snapshot.
	Invalidate()

	// Stats returns the cache counters.
	Stats() CacheStats
}
