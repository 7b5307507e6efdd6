package service

import (
	"time"

	"github.com/okian/prospectboard/internal/adapters/repository"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/okian/prospectboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSource sets the roster source. The embedded roster is used otherwise.
func WithSource(source repository.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithStore replaces the snapshot cache entirely; WithSource, WithTTL and
// WithClock are then ignored.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTTL sets the roster cache window.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects the time source used by the cache and snapshot ages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDeriver sets the statistics parameters: levels, age brackets, top N.
func WithDeriver(d *stats.Deriver) Option {
	return func(s *Service) {
		if d != nil {
			s.deriver = d
		}
	}
}

// WithMaxLeadersLimit caps the limit accepted by Leaders.
func WithMaxLeadersLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLeaders = n
		}
	}
}
