package model

import "strings"

// Kind tags which statistical line a prospect carries.
type Kind string

// Prospect kinds.
const (
	KindHitter  Kind = "hitter"
	KindPitcher Kind = "pitcher"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindHitter || k == KindPitcher
}

// HittingLine holds a hitter's slash line and counting stats.
type HittingLine struct {
	AVG float64 `json:"avg" yaml:"avg"`
	HR  int     `json:"hr" yaml:"hr"`
	RBI int     `json:"rbi" yaml:"rbi"`
	OBP float64 `json:"obp" yaml:"obp"`
	SLG float64 `json:"slg" yaml:"slg"`
}

// PitchingLine holds a pitcher's rate and counting stats.
type PitchingLine struct {
	ERA  float64        `json:"era" yaml:"era"`
	IP   InningsPitched `json:"ip" yaml:"ip"`
	SO   int            `json:"so" yaml:"so"`
	WHIP float64        `json:"whip" yaml:"whip"`
	Wins int            `json:"wins" yaml:"wins"`
}

// Prospect is a player record. Exactly one of Hitting and Pitching is set,
// matching Kind; records built by the repository loaders are validated for it.
type Prospect struct {
	Name     string        `json:"name" yaml:"name"`
	Position string        `json:"position" yaml:"position"`
	Level    Level         `json:"level" yaml:"level"`
	Age      int           `json:"age" yaml:"age"`
	Rank     int           `json:"rank,omitempty" yaml:"rank,omitempty"` // 0 = unranked
	Kind     Kind          `json:"kind" yaml:"kind"`
	Hitting  *HittingLine  `json:"hitting,omitempty" yaml:"hitting,omitempty"`
	Pitching *PitchingLine `json:"pitching,omitempty" yaml:"pitching,omitempty"`
}

// Ranked reports whether the prospect carries a rank.
func (p Prospect) Ranked() bool { return p.Rank > 0 }

// IsHitter reports whether p is a hitter with a hitting line.
func (p Prospect) IsHitter() bool { return p.Kind == KindHitter && p.Hitting != nil }

// IsPitcher reports whether p is a pitcher with a pitching line.
func (p Prospect) IsPitcher() bool { return p.Kind == KindPitcher && p.Pitching != nil }

// IsTopRanked checks whether the prospect is ranked within the top n.
func (p Prospect) IsTopRanked(n int) bool {
	return p.Rank > 0 && p.Rank <= n
}

// Identity is the identity key of a prospect name: trimmed, inner whitespace
// collapsed, case-folded.
func Identity(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
