// Package stats derives aggregate figures from a roster snapshot. All
// functions are pure: inputs are never mutated.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/prospectboard/internal/domain/model"
)

// Direction orders TopN results.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts asc/ascending and desc/descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Metric extracts a numeric value from a prospect.
type Metric struct {
	Name string
	// Kind restricts the metric to one variant; empty applies to all.
	Kind model.Kind
	// Better is the direction in which the metric improves.
	Better Direction
	value  func(model.Prospect) float64
}

// Applies reports whether the metric can be read from p.
func (m Metric) Applies(p model.Prospect) bool {
	switch m.Kind {
	case model.KindHitter:
		return p.IsHitter()
	case model.KindPitcher:
		return p.IsPitcher()
	default:
		return true
	}
}

// Value returns the metric for p, or NaN when it does not apply.
func (m Metric) Value(p model.Prospect) float64 {
	if m.value == nil || !m.Applies(p) {
		return math.NaN()
	}
	return m.value(p)
}

func hitting(name string, better Direction, fn func(*model.HittingLine) float64) Metric {
	return Metric{Name: name, Kind: model.KindHitter, Better: better, value: func(p model.Prospect) float64 {
		return fn(p.Hitting)
	}}
}

func pitching(name string, better Direction, fn func(*model.PitchingLine) float64) Metric {
	return Metric{Name: name, Kind: model.KindPitcher, Better: better, value: func(p model.Prospect) float64 {
		return fn(p.Pitching)
	}}
}

var registry = map[string]Metric{
	"avg":      hitting("avg", Descending, func(h *model.HittingLine) float64 { return h.AVG }),
	"obp":      hitting("obp", Descending, func(h *model.HittingLine) float64 { return h.OBP }),
	"slg":      hitting("slg", Descending, func(h *model.HittingLine) float64 { return h.SLG }),
	"hr":       hitting("hr", Descending, func(h *model.HittingLine) float64 { return float64(h.HR) }),
	"rbi":      hitting("rbi", Descending, func(h *model.HittingLine) float64 { return float64(h.RBI) }),
	"era":      pitching("era", Ascending, func(p *model.PitchingLine) float64 { return p.ERA }),
	"whip":     pitching("whip", Ascending, func(p *model.PitchingLine) float64 { return p.WHIP }),
	"so":       pitching("so", Descending, func(p *model.PitchingLine) float64 { return float64(p.SO) }),
	"wins":     pitching("wins", Descending, func(p *model.PitchingLine) float64 { return float64(p.Wins) }),
	"ip":       pitching("ip", Descending, func(p *model.PitchingLine) float64 { return p.IP.Innings() }),
	"k_per_ip": pitching("k_per_ip", Descending, func(p *model.PitchingLine) float64 { return StrikeoutsPerInning(*p).Float() }),
	"age":      {Name: "age", Better: Ascending, value: func(p model.Prospect) float64 { return float64(p.Age) }},
	"rank": {Name: "rank", Better: Ascending, value: func(p model.Prospect) float64 {
		if !p.Ranked() {
			return math.NaN()
		}
		return float64(p.Rank)
	}},
}

// Lookup returns the named metric.
func Lookup(name string) (Metric, error) {
	m, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// MetricNames lists the registered metric names, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
