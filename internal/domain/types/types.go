// Package types contains common types used across the application
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/prospectboard/internal/domain/charts"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
)

// SnapshotInfo describes a cached roster snapshot without its records.
type SnapshotInfo struct {
	ID         string    `json:"id"`
	ProducedAt time.Time `json:"produced_at"`
	Source     string    `json:"source"`
	Count      int       `json:"count"`
}

// RosterView is the read shape returned by roster queries.
type RosterView struct {
	SnapshotInfo
	Prospects model.Roster `json:"prospects"`
}

// RosterFilter narrows a roster view. Zero values match everything.
type RosterFilter struct {
	Kind  model.Kind
	Level model.Level
}

// ErrInvalidFilter is returned by ParseFilter for an unknown kind or level.
var ErrInvalidFilter = errors.New("invalid roster filter")

// ParseFilter builds a RosterFilter from raw kind and level values. Empty
// values match everything.
func ParseFilter(kind, level string) (RosterFilter, error) {
	var f RosterFilter
	if kind != "" {
		f.Kind = model.Kind(strings.ToLower(strings.TrimSpace(kind)))
		if !f.Kind.Valid() {
			return RosterFilter{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidFilter, kind)
		}
	}
	if level != "" {
		l, ok := model.ParseLevel(level)
		if !ok {
			return RosterFilter{}, fmt.Errorf("%w: unknown level %q", ErrInvalidFilter, level)
		}
		f.Level = l
	}
	return f, nil
}

// IsZero reports whether the filter matches everything.
func (f RosterFilter) IsZero() bool { return f == RosterFilter{} }

// Match reports whether p passes the filter.
func (f RosterFilter) Match(p model.Prospect) bool {
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	if f.Level != "" && p.Level != f.Level {
		return false
	}
	return true
}

// Leader is one row of a leaders board.
type Leader struct {
	Position int            `json:"position"`
	Value    stats.Rate     `json:"value"`
	Prospect model.Prospect `json:"prospect"`
}

// LeadersView is the read shape returned by leader queries.
type LeadersView struct {
	SnapshotInfo
	Metric    string   `json:"metric"`
	Direction string   `json:"direction"`
	Leaders   []Leader `json:"leaders"`
}

// SummaryView pairs the headline summary with its snapshot.
type SummaryView struct {
	SnapshotInfo
	Summary stats.Summary `json:"summary"`
}

// ChartsView pairs the dashboard charts with their snapshot.
type ChartsView struct {
	SnapshotInfo
	Charts []charts.Chart `json:"charts"`
}
