package stats

import "github.com/okian/prospectboard/internal/domain/model"

// Default deriver configuration constants.
const (
	defaultTopN    = 5
	top100Boundary = 100
)

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithLevels sets the levels counted by the level distribution.
func WithLevels(levels []model.Level) Option {
	return func(d *Deriver) {
		if len(levels) > 0 {
			d.levels = append([]model.Level(nil), levels...)
		}
	}
}

// WithAgeBrackets sets the brackets used by the age distribution.
func WithAgeBrackets(brackets []AgeBracket) Option {
	return func(d *Deriver) {
		if len(brackets) > 0 {
			d.brackets = append([]AgeBracket(nil), brackets...)
		}
	}
}

// WithTopN sets how many leaders the summary and charts include.
func WithTopN(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.topN = n
		}
	}
}
