package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/prospectboard/internal/domain/dedupe"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/pkg/logger"
	"github.com/okian/prospectboard/pkg/metrics"
)

// DefaultTTL is the cache window used when none is configured.
const DefaultTTL = time.Hour

// SnapshotCache is a single-entry, time-bounded roster cache. The whole
// check-then-reload sequence runs under one mutex, so concurrent callers
// during expiry trigger a single reload.
type SnapshotCache struct {
	mu      sync.Mutex
	source  Source
	ttl     time.Duration
	now     func() time.Time
	nextID  func() string
	logger  logger.Logger
	current Snapshot
	stats   CacheStats
}

var _ Store = (*SnapshotCache)(nil)

// NewSnapshotCache creates an empty cache in front of source.
func NewSnapshotCache(source Source, opts ...Option) *SnapshotCache {
	c := &SnapshotCache{
		source: source,
		ttl:    DefaultTTL,
		now:    time.Now,
		nextID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("roster_cache")
	}
	return c
}

// TTL returns the configured cache window.
func (c *SnapshotCache) TTL() time.Duration { return c.ttl }

// Roster implements Store.
func (c *SnapshotCache) Roster(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current.Empty() && c.now().Sub(c.current.ProducedAt) < c.ttl {
		c.stats.Hits++
		metrics.RecordCacheHit()
		return c.current, nil
	}
	c.stats.Misses++
	metrics.RecordCacheMiss()
	return c.reloadLocked(ctx)
}

// Current implements Store.
func (c *SnapshotCache) Current() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, !c.current.Empty()
}

// Refresh implements Store.
func (c *SnapshotCache) Refresh(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadLocked(ctx)
}

// Invalidate implements Store.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.current = Snapshot{}
	c.mu.Unlock()
}

// Stats implements Store.
func (c *SnapshotCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// reloadLocked loads, validates, dedupes and sorts a new snapshot. When the
// source fails and a previous snapshot exists, that snapshot is served and
// its timestamp left alone so the next call retries. Must hold c.mu.
func (c *SnapshotCache) reloadLocked(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	roster, err := c.load(ctx)
	if err != nil {
		c.stats.Failures++
		metrics.RecordRosterRefreshError(failureReason(err))
		if c.current.Empty() {
			c.logger.Error(ctx, "roster load failed", logger.String("roster_source", c.sourceName()), logger.Error(err))
			return Snapshot{}, err
		}
		c.stats.StaleServes++
		metrics.RecordStaleServe()
		c.logger.Warn(ctx, "roster load failed; serving last good snapshot",
			logger.String("roster_source", c.sourceName()),
			logger.String("snapshot", c.current.ID),
			logger.Error(err),
		)
		return c.current, nil
	}

	c.current = Snapshot{
		ID:         c.nextID(),
		Roster:     roster,
		ProducedAt: c.now(),
		Source:     c.sourceName(),
	}
	c.stats.Refreshes++

	elapsedMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordRosterRefresh(elapsedMs)
	recordSnapshotMetrics(c.current)
	c.logger.Debug(ctx, "roster snapshot refreshed",
		logger.String("snapshot", c.current.ID),
		logger.String("roster_source", c.current.Source),
		logger.Int("prospects", len(roster)),
		logger.Float64("elapsed_ms", elapsedMs),
	)
	return c.current, nil
}

func (c *SnapshotCache) sourceName() string {
	if c.source == nil {
		return "none"
	}
	return c.source.Name()
}

func (c *SnapshotCache) load(ctx context.Context) (model.Roster, error) {
	if c.source == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrSourceUnavailable)
	}
	raw, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyRoster
	}
	if err := model.ValidateRoster(raw); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			metrics.RecordValidationFailure(ve.Field)
		}
		return nil, err
	}

	kept, dropped := dedupe.Roster(ctx, raw)
	for _, p := range dropped {
		c.logger.Warn(ctx, "dropping duplicate prospect", logger.String("name", p.Name), logger.Int("rank", p.Rank))
	}
	return kept.Sorted(), nil
}

func recordSnapshotMetrics(s Snapshot) {
	metrics.UpdateRosterSize(len(s.Roster))
	metrics.UpdateRosterLastRefresh(s.ProducedAt)

	byLevel := make(map[model.Level]int, len(model.Levels()))
	for _, l := range model.Levels() {
		byLevel[l] = 0
	}
	byKind := map[model.Kind]int{model.KindHitter: 0, model.KindPitcher: 0}
	for _, p := range s.Roster {
		byLevel[p.Level]++
		byKind[p.Kind]++
	}
	for l, n := range byLevel {
		metrics.UpdateProspectsByLevel(string(l), n)
	}
	for k, n := range byKind {
		metrics.UpdateProspectsByKind(string(k), n)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return "validation"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEmptyRoster):
		return "empty"
	case errors.Is(err, ErrSourceUnavailable):
		return "unavailable"
	default:
		return "other"
	}
}
