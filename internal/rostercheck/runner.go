package rostercheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/prospectboard/internal/domain/types"
	"github.com/okian/prospectboard/pkg/logger"
)

// Run executes a complete check against the service at cfg.BaseURL. The
// returned Stats are filled in even when the run fails. Any invariant
// violation fails the run with ErrInvariant.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	c := cfg.withDefaults()
	log := c.Logger
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(c.BaseURL, c.Timeout)

	log.Info(ctx, "starting roster check",
		logger.String("baseURL", c.BaseURL),
		logger.Int("requests", c.Requests),
		logger.Int("workers", c.Workers),
		logger.Duration("timeout", c.Timeout),
		logger.Int("topN", c.TopN),
	)

	// Step 1: Check service health
	if _, err := client.Get(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// Step 2: Optional forced reload
	if c.Refresh {
		var info types.SnapshotInfo
		if _, err := client.Do(ctx, http.MethodPost, "/roster/refresh", nil, &info); err != nil {
			return stats, fmt.Errorf("refresh failed: %w", err)
		}
		log.Info(ctx, "roster refreshed", logger.String("snapshot", info.ID))
	}

	// Step 3: Baseline roster and summary
	var roster types.RosterView
	first, err := client.Get(ctx, "/roster", &roster)
	if err != nil {
		return stats, fmt.Errorf("roster fetch failed: %w", err)
	}
	stats.Prospects = len(roster.Prospects)
	stats.LatestSnapshot = roster.ID

	stats.addViolations(VerifyOrder(roster.Prospects)...)
	stats.addViolations(VerifyPartition(roster.Prospects)...)
	if roster.Count != len(roster.Prospects) {
		stats.addViolations(fmt.Sprintf("roster count %d, %d prospects listed", roster.Count, len(roster.Prospects)))
	}

	var summary types.SummaryView
	if _, err := client.Get(ctx, "/summary", &summary); err != nil {
		return stats, fmt.Errorf("summary fetch failed: %w", err)
	}
	if summary.ID == roster.ID {
		stats.addViolations(VerifySummary(summary.Summary, roster.Prospects)...)
	}

	// Step 4: Leader boards
	for _, metric := range c.Metrics {
		var board types.LeadersView
		path := "/leaders?metric=" + url.QueryEscape(metric) + "&limit=" + strconv.Itoa(c.TopN)
		if _, err := client.Get(ctx, path, &board); err != nil {
			return stats, fmt.Errorf("leaders %s failed: %w", metric, err)
		}
		stats.LeaderBoards++
		stats.addViolations(VerifyLeaders(board, c.TopN)...)
	}

	// Step 5: Concurrent conditional reads
	hammer(ctx, client, &c, first.ETag, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	if stats.Duration > 0 {
		stats.RequestsPerSec = float64(stats.Requests) / stats.Duration.Seconds()
	}
	displayFinalStats(ctx, log, stats)

	if stats.Successful == 0 {
		return stats, ErrNoRequests
	}
	if len(stats.Violations) > 0 {
		return stats, fmt.Errorf("%w: %d violations, first: %s", ErrInvariant, len(stats.Violations), stats.Violations[0])
	}
	log.Info(ctx, "roster check passed")
	return stats, nil
}

// hammer issues c.Requests conditional roster reads from c.Workers workers.
// Inside one cache window every reply must be 304 for the baseline ETag;
// once the snapshot turns over, the new snapshot must itself be ordered.
func hammer(ctx context.Context, client *Client, c *Config, etag string, stats *Stats) {
	c.Logger.Info(ctx, "issuing concurrent roster reads",
		logger.Int("requests", c.Requests), logger.Int("workers", c.Workers))

	var (
		submitted  int64
		successful int64
		failed     int64
		mu         sync.Mutex
	)
	snapshots := map[string]struct{}{}
	header := http.Header{"If-None-Match": []string{etag}}

	jobs := make(chan struct{}, c.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < c.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if ctx.Err() != nil {
					return
				}
				atomic.AddInt64(&submitted, 1)

				var view types.RosterView
				resp, err := client.Do(ctx, http.MethodGet, "/roster", header, &view)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					c.Logger.Debug(ctx, "roster read failed", logger.Error(err))
					continue
				}
				atomic.AddInt64(&successful, 1)
				if resp.Status == http.StatusNotModified {
					continue
				}

				// Snapshot turned over since the baseline.
				mu.Lock()
				_, known := snapshots[view.ID]
				snapshots[view.ID] = struct{}{}
				if !known {
					stats.LatestSnapshot = view.ID
				}
				mu.Unlock()
				if !known {
					stats.addViolations(VerifyOrder(view.Prospects)...)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < c.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- struct{}{}:
			}
		}
	}()

	wg.Wait()

	stats.Requests = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Snapshots = 1 + len(snapshots)
}

func (s *Stats) addViolations(v ...string) {
	if len(v) == 0 {
		return
	}
	s.mu.Lock()
	s.Violations = append(s.Violations, v...)
	s.mu.Unlock()
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("snapshots", stats.Snapshots),
		logger.Int("prospects", stats.Prospects),
		logger.Int("leaderBoards", stats.LeaderBoards),
		logger.Int("violations", len(stats.Violations)),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", stats.RequestsPerSec),
	)
	for _, v := range stats.Violations {
		log.Warn(ctx, "violation", logger.String("detail", v))
	}
}
