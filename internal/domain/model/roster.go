package model

import "sort"

// Roster is an ordered prospect list. Rosters returned by the cache are
// shared snapshots and must be treated as read-only.
type Roster []Prospect

// Before reports whether a sorts ahead of b: ranked entries first in rank
// order, then unranked entries youngest first.
func Before(a, b Prospect) bool {
	switch {
	case a.Ranked() && b.Ranked():
		return a.Rank < b.Rank
	case a.Ranked():
		return true
	case b.Ranked():
		return false
	default:
		return a.Age < b.Age
	}
}

// Sorted returns a stably sorted copy of r. Entries that compare equal keep
// their relative order.
func (r Roster) Sorted() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool { return Before(out[i], out[j]) })
	return out
}

// IsSorted reports whether r already satisfies the roster ordering.
func (r Roster) IsSorted() bool {
	return sort.SliceIsSorted(r, func(i, j int) bool { return Before(r[i], r[j]) })
}

// Hitters returns the hitters in r, preserving order.
func (r Roster) Hitters() Roster {
	return r.Filter(Prospect.IsHitter)
}

// Pitchers returns the pitchers in r, preserving order.
func (r Roster) Pitchers() Roster {
	return r.Filter(Prospect.IsPitcher)
}

// Filter returns the prospects for which keep returns true, preserving order.
func (r Roster) Filter(keep func(Prospect) bool) Roster {
	out := make(Roster, 0, len(r))
	for _, p := range r {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ByRank returns the prospect with the given rank.
func (r Roster) ByRank(rank int) (Prospect, bool) {
	if rank <= 0 {
		return Prospect{}, false
	}
	for _, p := range r {
		if p.Rank == rank {
			return p, true
		}
	}
	return Prospect{}, false
}
