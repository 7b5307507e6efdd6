// Package rostercheck drives a running prospect board over HTTP and checks
// that what it serves holds the roster invariants.
package rostercheck

import (
	"sync"
	"time"

	"github.com/okian/prospectboard/pkg/logger"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of concurrent roster reads
	Workers  int           // Number of concurrent workers
	TopN     int           // Leaders fetched per metric
	Metrics  []string      // Metrics whose leaders are checked
	Timeout  time.Duration // HTTP request timeout
	Refresh  bool          // Force a reload before reading
	Logger   logger.Logger // Defaults to logger.Get()
}

// Stats holds run statistics.
type Stats struct {
	mu sync.Mutex

	Requests       int
	Successful     int
	Failed         int
	Snapshots      int // distinct snapshot ids seen
	Prospects      int
	LeaderBoards   int
	Violations     []string
	LatestSnapshot string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	RequestsPerSec float64
}

// Default run parameters.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultRequests = 1000
	DefaultTopN     = 5
	DefaultTimeout  = 10 * time.Second
)

// DefaultMetrics is checked when Config.Metrics is empty.
var DefaultMetrics = []string{"avg", "hr", "era", "whip", "k_per_ip"}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Requests <= 0 {
		out.Requests = DefaultRequests
	}
	if out.Workers <= 0 {
		out.Workers = 1
	}
	if out.TopN <= 0 {
		out.TopN = DefaultTopN
	}
	if len(out.Metrics) == 0 {
		out.Metrics = DefaultMetrics
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Logger == nil {
		out.Logger = logger.Get()
	}
	return out
}
