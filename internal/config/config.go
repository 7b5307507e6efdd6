// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"fmt"
	"time"

	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheTTLMS is how long a roster snapshot stays fresh, in milliseconds.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// RosterFile points at a roster YAML document. Empty serves the
	// roster compiled into the binary.
	RosterFile string `koanf:"roster_file"`

	// ChartLevels lists the levels counted by the level distribution.
	ChartLevels []string `koanf:"chart_levels"`

	// AgeBrackets configures the age distribution buckets.
	AgeBrackets []stats.AgeBracket `koanf:"age_brackets"`

	// TopN is the number of leaders shown in the summary and charts.
	TopN int `koanf:"top_n"`

	// MaxLeadersLimit caps GET /leaders?limit.
	MaxLeadersLimit int `koanf:"max_leaders_limit"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsEnabled turns metric collection on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		CacheTTLMS:         3_600_000,
		ChartLevels:        []string{"AAA", "AA", "A+", "A"},
		AgeBrackets:        stats.DefaultAgeBrackets(),
		TopN:               5,
		MaxLeadersLimit:    100,
		CORSAllowedOrigins: []string{"*"},
		MetricsNamespace:   "prospectboard",
		MetricsEnabled:     true,
	}
}

// CacheTTL returns CacheTTLMS as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// Levels parses ChartLevels.
func (c *Config) Levels() ([]model.Level, error) {
	levels := make([]model.Level, 0, len(c.ChartLevels))
	for _, s := range c.ChartLevels {
		l, ok := model.ParseLevel(s)
		if !ok {
			return nil, fmt.Errorf("%w: chart_levels: unknown level %q", ErrInvalidConfig, s)
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// Validate checks the values Load cannot repair.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CacheTTLMS <= 0:
		return fmt.Errorf("%w: cache_ttl_ms must be positive, got %d", ErrInvalidConfig, c.CacheTTLMS)
	case c.TopN <= 0:
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, c.TopN)
	case c.MaxLeadersLimit <= 0:
		return fmt.Errorf("%w: max_leaders_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeadersLimit)
	case c.TopN > c.MaxLeadersLimit:
		return fmt.Errorf("%w: top_n %d above max_leaders_limit %d", ErrInvalidConfig, c.TopN, c.MaxLeadersLimit)
	case len(c.ChartLevels) == 0:
		return fmt.Errorf("%w: chart_levels must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Levels(); err != nil {
		return err
	}
	for i, b := range c.AgeBrackets {
		if b.Min > 0 && b.Max > 0 && b.Min > b.Max {
			return fmt.Errorf("%w: age_brackets[%d]: min %d above max %d", ErrInvalidConfig, i, b.Min, b.Max)
		}
	}
	return nil
}
