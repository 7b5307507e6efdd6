package model

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks a single record. index is only used for error reporting.
func Validate(index int, p Prospect) error {
	fail := func(field, reason string) error {
		return &ValidationError{Index: index, Name: p.Name, Field: field, Reason: reason}
	}

	if strings.TrimSpace(p.Name) == "" {
		return fail("name", "must not be empty")
	}
	if !p.Level.Valid() {
		return fail("level", fmt.Sprintf("unknown level %q", p.Level))
	}
	if p.Age <= 0 {
		return fail("age", "must be positive")
	}
	if p.Rank < 0 {
		return fail("rank", "must be positive when present")
	}

	switch p.Kind {
	case KindHitter:
		if p.Pitching != nil {
			return fail("pitching", "hitter must not carry a pitching line")
		}
		if p.Hitting == nil {
			return fail("hitting", "missing for hitter")
		}
		return validateHitting(p.Hitting, fail)
	case KindPitcher:
		if p.Hitting != nil {
			return fail("hitting", "pitcher must not carry a hitting line")
		}
		if p.Pitching == nil {
			return fail("pitching", "missing for pitcher")
		}
		return validatePitching(p.Pitching, fail)
	case "":
		return fail("kind", "missing; must be hitter or pitcher")
	default:
		return fail("kind", fmt.Sprintf("unknown kind %q", p.Kind))
	}
}

// finite reports whether v is neither NaN nor infinite. Range checks below
// rely on it, since NaN compares false against every bound.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateHitting(h *HittingLine, fail func(string, string) error) error {
	switch {
	case !finite(h.AVG):
		return fail("hitting.avg", "must be a finite number")
	case !finite(h.OBP):
		return fail("hitting.obp", "must be a finite number")
	case !finite(h.SLG):
		return fail("hitting.slg", "must be a finite number")
	case h.AVG < 0 || h.AVG > 1:
		return fail("hitting.avg", "must be within 0 and 1")
	case h.OBP < 0 || h.OBP > 1:
		return fail("hitting.obp", "must be within 0 and 1")
	case h.SLG < 0:
		return fail("hitting.slg", "must not be negative")
	case h.HR < 0:
		return fail("hitting.hr", "must not be negative")
	case h.RBI < 0:
		return fail("hitting.rbi", "must not be negative")
	}
	return nil
}

func validatePitching(pl *PitchingLine, fail func(string, string) error) error {
	switch {
	case !finite(pl.ERA):
		return fail("pitching.era", "must be a finite number")
	case !finite(pl.WHIP):
		return fail("pitching.whip", "must be a finite number")
	case pl.ERA < 0:
		return fail("pitching.era", "must not be negative")
	case !pl.IP.Valid():
		return fail("pitching.ip", "outs must be 0, 1 or 2")
	case pl.SO < 0:
		return fail("pitching.so", "must not be negative")
	case pl.WHIP < 0:
		return fail("pitching.whip", "must not be negative")
	case pl.Wins < 0:
		return fail("pitching.wins", "must not be negative")
	}
	return nil
}

// ValidateRoster validates every record and checks that ranks are unique.
// The first failure is returned.
func ValidateRoster(r Roster) error {
	ranks := make(map[int]int, len(r))
	for i, p := range r {
		if err := Validate(i, p); err != nil {
			return err
		}
		if !p.Ranked() {
			continue
		}
		if first, dup := ranks[p.Rank]; dup {
			if Identity(r[first].Name) == Identity(p.Name) {
				// repeated record; dropped later by identity dedupe
				continue
			}
			return &ValidationError{
				Index:  i,
				Name:   p.Name,
				Field:  "rank",
				Reason: fmt.Sprintf("rank %d already used by record %d", p.Rank, first),
			}
		}
		ranks[p.Rank] = i
	}
	return nil
}
