package stats

import (
	"math"

	"github.com/okian/prospectboard/internal/domain/model"
)

// Deriver bundles the literal parameters the presentation layer passes to
// the pure functions in this package.
type Deriver struct {
	levels   []model.Level
	brackets []AgeBracket
	topN     int
}

// NewDeriver creates a Deriver with the dashboard defaults: levels AAA, AA,
// A+, A; the default age brackets; top 5.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		levels:   []model.Level{model.LevelAAA, model.LevelAA, model.LevelAPlus, model.LevelA},
		brackets: DefaultAgeBrackets(),
		topN:     defaultTopN,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Levels returns a copy of the configured levels.
func (d *Deriver) Levels() []model.Level { return append([]model.Level(nil), d.levels...) }

// AgeBrackets returns a copy of the configured brackets.
func (d *Deriver) AgeBrackets() []AgeBracket { return append([]AgeBracket(nil), d.brackets...) }

// TopN returns the configured leader count.
func (d *Deriver) TopN() int { return d.topN }

// LevelCounts returns CountByLevel over the configured levels, in order.
func (d *Deriver) LevelCounts(r model.Roster) []int {
	counts := CountByLevel(r, d.levels)
	out := make([]int, len(d.levels))
	for i, l := range d.levels {
		out[i] = counts[l]
	}
	return out
}

// TopPitchers returns the best ERA pitchers, lowest first.
func (d *Deriver) TopPitchers(r model.Roster) model.Roster {
	return TopN(r.Pitchers(), registry["era"], d.topN, Ascending)
}

// TopHitters returns the best AVG hitters, highest first.
func (d *Deriver) TopHitters(r model.Roster) model.Roster {
	return TopN(r.Hitters(), registry["avg"], d.topN, Descending)
}

// Summary is the headline block shown above the charts.
type Summary struct {
	Total        int          `json:"total"`
	TotalTop100  int          `json:"total_top_100"`
	Hitters      int          `json:"hitters"`
	Pitchers     int          `json:"pitchers"`
	AverageAge   float64      `json:"average_age"`
	AverageLevel model.Level  `json:"average_level,omitempty"`
	TopPitchers  model.Roster `json:"top_pitchers"`
	TopHitters   model.Roster `json:"top_hitters"`
}

// Summarize computes the Summary for r.
func (d *Deriver) Summarize(r model.Roster) Summary {
	s := Summary{
		Total:       len(r),
		Hitters:     len(r.Hitters()),
		Pitchers:    len(r.Pitchers()),
		TopPitchers: d.TopPitchers(r),
		TopHitters:  d.TopHitters(r),
	}
	if len(r) == 0 {
		return s
	}

	ageSum, levelSum, leveled := 0, 0, 0
	for _, p := range r {
		ageSum += p.Age
		if p.IsTopRanked(top100Boundary) {
			s.TotalTop100++
		}
		if ord, ok := p.Level.Ordinal(); ok {
			levelSum += ord
			leveled++
		}
	}
	s.AverageAge = Ratio(float64(ageSum), float64(len(r))).Round(1).Value
	if leveled > 0 {
		mean := float64(levelSum) / float64(leveled)
		s.AverageLevel = model.LevelAt(int(math.Floor(mean + 0.5)))
	}
	return s
}
