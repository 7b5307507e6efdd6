package rostercheck

import (
	"fmt"

	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/okian/prospectboard/internal/domain/types"
)

// VerifyOrder checks that ranked prospects come first by ascending rank and
// unranked prospects follow by ascending age.
func VerifyOrder(r model.Roster) []string {
	var out []string
	seen := make(map[int]int, len(r))
	for i, p := range r {
		if p.Rank > 0 {
			if j, dup := seen[p.Rank]; dup {
				out = append(out, fmt.Sprintf("rank %d held by records %d and %d", p.Rank, j, i))
			}
			seen[p.Rank] = i
		}
		if i == 0 {
			continue
		}
		prev := r[i-1]
		switch {
		case prev.Rank == 0 && p.Rank > 0:
			out = append(out, fmt.Sprintf("ranked %q (#%d) after unranked %q", p.Name, p.Rank, prev.Name))
		case prev.Rank > 0 && p.Rank > 0 && prev.Rank > p.Rank:
			out = append(out, fmt.Sprintf("rank %d after rank %d", p.Rank, prev.Rank))
		case prev.Rank == 0 && p.Rank == 0 && prev.Age > p.Age:
			out = append(out, fmt.Sprintf("unranked age %d after age %d", p.Age, prev.Age))
		}
	}
	return out
}

// VerifyPartition checks that every record is exactly one of hitter or
// pitcher and carries the matching stat line only.
func VerifyPartition(r model.Roster) []string {
	var out []string
	for i, p := range r {
		switch p.Kind {
		case model.KindHitter:
			if p.Hitting == nil || p.Pitching != nil {
				out = append(out, fmt.Sprintf("record %d %q: hitter without a lone hitting line", i, p.Name))
			}
		case model.KindPitcher:
			if p.Pitching == nil || p.Hitting != nil {
				out = append(out, fmt.Sprintf("record %d %q: pitcher without a lone pitching line", i, p.Name))
			}
		default:
			out = append(out, fmt.Sprintf("record %d %q: unknown kind %q", i, p.Name, p.Kind))
		}
	}
	return out
}

// VerifySummary checks the headline counts against the roster they were
// derived from.
func VerifySummary(s stats.Summary, r model.Roster) []string {
	var out []string
	if s.Total != len(r) {
		out = append(out, fmt.Sprintf("summary total %d, roster has %d", s.Total, len(r)))
	}
	if got, want := s.Hitters, len(r.Hitters()); got != want {
		out = append(out, fmt.Sprintf("summary hitters %d, roster has %d", got, want))
	}
	if got, want := s.Pitchers, len(r.Pitchers()); got != want {
		out = append(out, fmt.Sprintf("summary pitchers %d, roster has %d", got, want))
	}
	if s.Hitters+s.Pitchers != s.Total {
		out = append(out, fmt.Sprintf("hitters %d + pitchers %d != total %d", s.Hitters, s.Pitchers, s.Total))
	}
	if s.TotalTop100 > s.Total {
		out = append(out, fmt.Sprintf("top 100 count %d exceeds total %d", s.TotalTop100, s.Total))
	}
	return out
}

// VerifyLeaders checks that a leader board is bounded by limit, numbered
// from 1, restricted to the metric's variant and ordered in its direction
// with undefined values last.
func VerifyLeaders(v types.LeadersView, limit int) []string {
	var out []string
	if len(v.Leaders) > limit {
		out = append(out, fmt.Sprintf("%s: %d leaders for limit %d", v.Metric, len(v.Leaders), limit))
	}
	m, err := stats.Lookup(v.Metric)
	if err != nil {
		return append(out, err.Error())
	}
	dir, err := stats.ParseDirection(v.Direction)
	if err != nil {
		return append(out, err.Error())
	}

	for i, l := range v.Leaders {
		if l.Position != i+1 {
			out = append(out, fmt.Sprintf("%s: leader %d has position %d", v.Metric, i, l.Position))
		}
		if !m.Applies(l.Prospect) {
			out = append(out, fmt.Sprintf("%s: %q is not a %s", v.Metric, l.Prospect.Name, m.Kind))
		}
		if i == 0 {
			continue
		}
		prev := v.Leaders[i-1].Value
		switch {
		case !prev.Defined && l.Value.Defined:
			out = append(out, fmt.Sprintf("%s: defined value after undefined at position %d", v.Metric, l.Position))
		case !prev.Defined || !l.Value.Defined:
		case dir == stats.Descending && l.Value.Value > prev.Value:
			out = append(out, fmt.Sprintf("%s: %.3f after %.3f in descending order", v.Metric, l.Value.Value, prev.Value))
		case dir == stats.Ascending && l.Value.Value < prev.Value:
			out = append(out, fmt.Sprintf("%s: %.3f after %.3f in ascending order", v.Metric, l.Value.Value, prev.Value))
		}
	}
	return out
}
