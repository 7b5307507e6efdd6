package charts

import "github.com/okian/prospectboard/internal/domain/stats"

const (
	defaultRadarFill       = "rgba(59, 130, 246, 0.2)"
	defaultPrecision int32 = 2
)

// DefaultPalette returns the dashboard blues, darkest first.
func DefaultPalette() []string {
	return []string{"#1e40af", "#3b82f6", "#93c5fd", "#bfdbfe"}
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithDeriver sets the deriver supplying levels, brackets and leader count.
func WithDeriver(d *stats.Deriver) Option {
	return func(b *Builder) {
		if d != nil {
			b.deriver = d
		}
	}
}

// WithPalette overrides the chart colours.
func WithPalette(colors []string) Option {
	return func(b *Builder) {
		if len(colors) > 0 {
			b.palette = append([]string(nil), colors...)
		}
	}
}

// WithPrecision sets the decimal places used for derived rates.
func WithPrecision(places int32) Option {
	return func(b *Builder) {
		if places >= 0 {
			b.precision = places
		}
	}
}
