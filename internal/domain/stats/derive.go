package stats

import (
	"math"
	"sort"
	"strconv"

	"github.com/okian/prospectboard/internal/domain/model"
)

// CountByLevel counts prospects whose level equals each requested level.
// Every requested level is present in the result. Levels outside the list
// are not counted anywhere.
func CountByLevel(r model.Roster, levels []model.Level) map[model.Level]int {
	counts := make(map[model.Level]int, len(levels))
	for _, l := range levels {
		counts[l] = 0
	}
	for _, p := range r {
		if _, ok := counts[p.Level]; ok {
			counts[p.Level]++
		}
	}
	return counts
}

// AgeBracket is an inclusive age range. A zero Min or Max leaves that side open.
type AgeBracket struct {
	Label string `json:"label" koanf:"label"`
	Min   int    `json:"min,omitempty" koanf:"min"`
	Max   int    `json:"max,omitempty" koanf:"max"`
}

// Contains reports whether age falls inside the bracket.
func (b AgeBracket) Contains(age int) bool {
	if b.Min > 0 && age < b.Min {
		return false
	}
	if b.Max > 0 && age > b.Max {
		return false
	}
	return true
}

// DefaultAgeBrackets returns ≤21, 22–23 and ≥24.
func DefaultAgeBrackets() []AgeBracket {
	return []AgeBracket{
		{Label: "20-21", Max: 21},
		{Label: "22-23", Min: 22, Max: 23},
		{Label: "24+", Min: 24},
	}
}

// BracketLabels returns the labels of brackets, in order.
func BracketLabels(brackets []AgeBracket) []string {
	labels := make([]string, len(brackets))
	for i, b := range brackets {
		labels[i] = b.Label
		if labels[i] == "" {
			labels[i] = strconv.Itoa(b.Min) + "-" + strconv.Itoa(b.Max)
		}
	}
	return labels
}

// BucketByAge counts subset members per bracket. A prospect is counted in
// every bracket that contains its age, so overlapping brackets double count.
func BucketByAge(subset model.Roster, brackets []AgeBracket) []int {
	counts := make([]int, len(brackets))
	for _, p := range subset {
		for i, b := range brackets {
			if b.Contains(p.Age) {
				counts[i]++
			}
		}
	}
	return counts
}

// TopN returns up to n prospects from subset ordered by metric in the given
// direction. Prospects the metric does not apply to are skipped; prospects
// with an undefined value sort last. Ties keep their subset order.
func TopN(subset model.Roster, metric Metric, n int, dir Direction) model.Roster {
	if n <= 0 {
		return model.Roster{}
	}

	type scored struct {
		p model.Prospect
		v float64
	}
	candidates := make([]scored, 0, len(subset))
	for _, p := range subset {
		if metric.Applies(p) {
			candidates = append(candidates, scored{p: p, v: metric.Value(p)})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].v, candidates[j].v
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case dir == Descending:
			return a > b
		default:
			return a < b
		}
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make(model.Roster, n)
	for i := range out {
		out[i] = candidates[i].p
	}
	return out
}
