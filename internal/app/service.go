// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/prospectboard/internal/adapters/repository"
	"github.com/okian/prospectboard/internal/domain/charts"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/okian/prospectboard/internal/domain/types"
	"github.com/okian/prospectboard/pkg/logger"
	"github.com/okian/prospectboard/pkg/metrics"
)

const (
	defaultMaxLeaders = 100
	leaderPrecision   = 3
)

// Service implements the API dependencies for the prospect board.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	source  repository.Source
	deriver *stats.Deriver
	charts  *charts.Builder

	// Configuration
	ttl        time.Duration
	maxLeaders int
	now        func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		ttl:        repository.DefaultTTL,
		maxLeaders: defaultMaxLeaders,
		now:        time.Now,
		deriver:    stats.NewDeriver(),
		logger:     nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}
	s.charts = charts.NewBuilder(charts.WithDeriver(s.deriver))

	return s
}

// Start builds the snapshot cache and loads the first snapshot. A roster
// that cannot be loaded fails startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting prospect service...")

	if s.source == nil {
		s.source = repository.EmbeddedSource()
	}
	if s.store == nil {
		s.store = repository.NewSnapshotCache(s.source,
			repository.WithTTL(s.ttl),
			repository.WithClock(s.now),
			repository.WithLogger(s.logger.Named("roster_cache")),
		)
	}

	snap, err := s.store.Roster(ctx)
	if err != nil {
		return fmt.Errorf("initial roster load from %s: %w", s.source.Name(), err)
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "prospect service started",
		logger.String("roster_source", snap.Source),
		logger.String("snapshot", snap.ID),
		logger.Int("prospects", len(snap.Roster)),
		logger.Duration("ttl", s.ttl),
	)
	return nil
}

// Stop marks the service stopped. Snapshots are in memory only.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping prospect service...")
	s.store.Invalidate()
	s.started = false
	s.logger.Info(context.Background(), "prospect service stopped")
}

func (s *Service) snapshot(ctx context.Context) (repository.Snapshot, error) {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()

	if !started {
		return repository.Snapshot{}, ErrNotStarted
	}
	return store.Roster(ctx)
}

func info(snap repository.Snapshot, count int) types.SnapshotInfo {
	return types.SnapshotInfo{
		ID:         snap.ID,
		ProducedAt: snap.ProducedAt,
		Source:     snap.Source,
		Count:      count,
	}
}

// Roster returns the sorted roster, narrowed by filter.
func (s *Service) Roster(ctx context.Context, filter types.RosterFilter) (types.RosterView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.RosterView{}, err
	}
	prospects := snap.Roster
	if !filter.IsZero() {
		prospects = snap.Roster.Filter(filter.Match)
	}
	return types.RosterView{SnapshotInfo: info(snap, len(prospects)), Prospects: prospects}, nil
}

// Prospect returns the prospect holding rank.
func (s *Service) Prospect(ctx context.Context, rank int) (model.Prospect, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.Prospect{}, err
	}
	p, ok := snap.Roster.ByRank(rank)
	if !ok {
		return model.Prospect{}, fmt.Errorf("rank %d: %w", rank, repository.ErrNotFound)
	}
	return p, nil
}

// Leaders ranks the prospects a metric applies to. An empty direction uses
// the direction in which the metric improves.
func (s *Service) Leaders(ctx context.Context, metric string, n int, direction string) (types.LeadersView, error) {
	if n < 1 {
		return types.LeadersView{}, ErrInvalidLimit
	}
	if n > s.maxLeaders {
		return types.LeadersView{}, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, s.maxLeaders)
	}
	m, err := stats.Lookup(metric)
	if err != nil {
		return types.LeadersView{}, err
	}
	dir := m.Better
	if direction != "" {
		if dir, err = stats.ParseDirection(direction); err != nil {
			return types.LeadersView{}, err
		}
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.LeadersView{}, err
	}

	start := time.Now()
	top := stats.TopN(snap.Roster, m, n, dir)
	leaders := make([]types.Leader, len(top))
	for i, p := range top {
		leaders[i] = types.Leader{
			Position: i + 1,
			Value:    stats.Value(m.Value(p)).Round(leaderPrecision),
			Prospect: p,
		}
	}
	metrics.RecordDerivation("leaders", elapsedMs(start))

	return types.LeadersView{
		SnapshotInfo: info(snap, len(snap.Roster)),
		Metric:       m.Name,
		Direction:    dir.String(),
		Leaders:      leaders,
	}, nil
}

// Summary returns the headline figures of the current snapshot.
func (s *Service) Summary(ctx context.Context) (types.SummaryView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.SummaryView{}, err
	}
	start := time.Now()
	summary := s.deriver.Summarize(snap.Roster)
	metrics.RecordDerivation("summary", elapsedMs(start))
	return types.SummaryView{SnapshotInfo: info(snap, len(snap.Roster)), Summary: summary}, nil
}

// Charts returns the dashboard chart datasets of the current snapshot.
func (s *Service) Charts(ctx context.Context) (types.ChartsView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.ChartsView{}, err
	}
	start := time.Now()
	built := s.charts.Build(snap.Roster)
	metrics.RecordDerivation("charts", elapsedMs(start))
	return types.ChartsView{SnapshotInfo: info(snap, len(snap.Roster)), Charts: built}, nil
}

// Refresh reloads the roster from its source regardless of age.
func (s *Service) Refresh(ctx context.Context) (types.SnapshotInfo, error) {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()
	if !started {
		return types.SnapshotInfo{}, ErrNotStarted
	}

	snap, err := store.Refresh(ctx)
	if err != nil {
		return types.SnapshotInfo{}, err
	}
	s.logger.Info(ctx, "roster refreshed on request",
		logger.String("snapshot", snap.ID),
		logger.Int("prospects", len(snap.Roster)),
	)
	return info(snap, len(snap.Roster)), nil
}

// SnapshotAge reports how old the held snapshot is without touching the
// cache counters. Zero before start or when nothing is held.
func (s *Service) SnapshotAge() time.Duration {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()
	if !started {
		return 0
	}
	snap, ok := store.Current()
	if !ok {
		return 0
	}
	return s.now().Sub(snap.ProducedAt)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"ttl_ms":            s.ttl.Milliseconds(),
		"max_leaders_limit": s.maxLeaders,
		"top_n":             s.deriver.TopN(),
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}

	if s.started {
		stats["cache"] = s.store.Stats()
		stats["uptime_seconds"] = int64(s.now().Sub(s.startedAt).Seconds())
	}

	return stats
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
