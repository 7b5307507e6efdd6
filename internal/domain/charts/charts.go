// Package charts turns a roster snapshot into the chart datasets drawn by
// the dashboard. Output mirrors the Chart.js data shape so the browser only
// maps fields, never computes.
package charts

import (
	"encoding/json"

	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
)

// Chart identifiers, also used as canvas ids on the dashboard.
const (
	LevelDistribution = "levelDistribution"
	AgeDistribution   = "ageDistribution"
	PitchingStats     = "pitchingStats"
	HittingStats      = "hittingStats"
)

// Type is a Chart.js chart type.
type Type string

// Chart types in use.
const (
	Pie   Type = "pie"
	Bar   Type = "bar"
	Radar Type = "radar"
)

// Colors is one colour per data point, or a single colour for the whole
// dataset. A single colour encodes as a plain string.
type Colors []string

// MarshalJSON implements json.Marshaler.
func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// Dataset is one series of a chart. Undefined values encode as null.
type Dataset struct {
	Label           string       `json:"label,omitempty"`
	Data            []stats.Rate `json:"data"`
	BackgroundColor Colors       `json:"backgroundColor,omitempty"`
	BorderColor     string       `json:"borderColor,omitempty"`
	Fill            bool         `json:"fill,omitempty"`
}

// Scale carries the axis hints of a chart.
type Scale struct {
	Axis        string   `json:"axis"`
	BeginAtZero bool     `json:"beginAtZero,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	StepSize    float64  `json:"stepSize,omitempty"`
}

// Chart is a renderable chart definition.
type Chart struct {
	ID       string    `json:"id"`
	Type     Type      `json:"type"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Scale    *Scale    `json:"scale,omitempty"`
}

// Builder assembles charts from a roster.
type Builder struct {
	deriver   *stats.Deriver
	palette   []string
	radarFill string
	precision int32
}

// NewBuilder creates a Builder with the default deriver and palette.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		deriver:   stats.NewDeriver(),
		palette:   DefaultPalette(),
		radarFill: defaultRadarFill,
		precision: defaultPrecision,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the four dashboard charts for r, in display order.
func Build(r model.Roster, opts ...Option) []Chart {
	return NewBuilder(opts...).Build(r)
}

// Build returns the four dashboard charts for r, in display order.
func (b *Builder) Build(r model.Roster) []Chart {
	return []Chart{
		b.levelDistribution(r),
		b.ageDistribution(r),
		b.pitchingStats(r),
		b.hittingStats(r),
	}
}

func (b *Builder) color(i int) string {
	return b.palette[i%len(b.palette)]
}

func (b *Builder) levelDistribution(r model.Roster) Chart {
	levels := b.deriver.Levels()
	labels := make([]string, len(levels))
	colors := make(Colors, len(levels))
	for i, l := range levels {
		labels[i] = string(l)
		colors[i] = b.color(i)
	}
	return Chart{
		ID:     LevelDistribution,
		Type:   Pie,
		Title:  "Prospect Distribution by Level",
		Labels: labels,
		Datasets: []Dataset{{
			Data:            counts(b.deriver.LevelCounts(r)),
			BackgroundColor: colors,
		}},
	}
}

func (b *Builder) ageDistribution(r model.Roster) Chart {
	brackets := b.deriver.AgeBrackets()
	return Chart{
		ID:     AgeDistribution,
		Type:   Bar,
		Title:  "Age Distribution by Position Type",
		Labels: stats.BracketLabels(brackets),
		Datasets: []Dataset{
			{Label: "Pitchers", Data: counts(stats.BucketByAge(r.Pitchers(), brackets)), BackgroundColor: Colors{b.color(0)}},
			{Label: "Hitters", Data: counts(stats.BucketByAge(r.Hitters(), brackets)), BackgroundColor: Colors{b.color(1)}},
		},
		Scale: &Scale{Axis: "y", BeginAtZero: true, StepSize: 1},
	}
}

func (b *Builder) pitchingStats(r model.Roster) Chart {
	top := b.deriver.TopPitchers(r)
	datasets := make([]Dataset, 0, len(top))
	for _, p := range top {
		line := p.Pitching
		datasets = append(datasets, Dataset{
			Label: p.Name,
			Data: []stats.Rate{
				stats.Value(line.ERA),
				stats.Value(line.WHIP),
				stats.StrikeoutsPerInning(*line).Round(b.precision),
				stats.Value(float64(line.Wins)),
			},
			BackgroundColor: Colors{b.radarFill},
			BorderColor:     b.color(1),
			Fill:            true,
		})
	}
	zero := 0.0
	return Chart{
		ID:       PitchingStats,
		Type:     Radar,
		Title:    "Top Pitchers Performance Comparison",
		Labels:   []string{"ERA", "WHIP", "K/IP", "Wins"},
		Datasets: datasets,
		Scale:    &Scale{Axis: "r", Min: &zero},
	}
}

func (b *Builder) hittingStats(r model.Roster) Chart {
	top := b.deriver.TopHitters(r)
	labels := make([]string, len(top))
	avg := make([]stats.Rate, len(top))
	obp := make([]stats.Rate, len(top))
	slg := make([]stats.Rate, len(top))
	for i, p := range top {
		labels[i] = p.Name
		avg[i] = stats.Value(p.Hitting.AVG)
		obp[i] = stats.Value(p.Hitting.OBP)
		slg[i] = stats.Value(p.Hitting.SLG)
	}
	one := 1.0
	return Chart{
		ID:     HittingStats,
		Type:   Bar,
		Title:  "Top Hitters Slash Lines",
		Labels: labels,
		Datasets: []Dataset{
			{Label: "AVG", Data: avg, BackgroundColor: Colors{b.color(0)}},
			{Label: "OBP", Data: obp, BackgroundColor: Colors{b.color(1)}},
			{Label: "SLG", Data: slg, BackgroundColor: Colors{b.color(2)}},
		},
		Scale: &Scale{Axis: "y", BeginAtZero: true, Max: &one},
	}
}

func counts(in []int) []stats.Rate {
	out := make([]stats.Rate, len(in))
	for i, n := range in {
		out[i] = stats.Value(float64(n))
	}
	return out
}
