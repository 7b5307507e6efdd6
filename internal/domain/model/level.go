// Package model contains domain models passed between layers.
package model

import "strings"

// Level is the competitive tier a prospect plays at.
type Level string

// Known levels, ordered from rookie ball up to the majors.
const (
	LevelROK   Level = "ROK"
	LevelA     Level = "A"
	LevelAPlus Level = "A+"
	LevelAA    Level = "AA"
	LevelAAA   Level = "AAA"
	LevelMLB   Level = "MLB"
)

const levelsInOrder = 6

var orderedLevels = [levelsInOrder]Level{LevelROK, LevelA, LevelAPlus, LevelAA, LevelAAA, LevelMLB}

// Levels returns every known level from lowest to highest.
func Levels() []Level {
	out := make([]Level, len(orderedLevels))
	copy(out, orderedLevels[:])
	return out
}

// ParseLevel matches s against the known levels. Matching is exact after
// trimming surrounding whitespace and upper-casing, so "a+" parses but "A +" does not.
func ParseLevel(s string) (Level, bool) {
	candidate := Level(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range orderedLevels {
		if l == candidate {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := l.Ordinal()
	return ok
}

// Ordinal returns the position of l in the level ladder (ROK=0 ... MLB=5).
func (l Level) Ordinal() (int, bool) {
	for i, known := range orderedLevels {
		if known == l {
			return i, true
		}
	}
	return -1, false
}

// LevelAt returns the level with the given ordinal, clamped to the ladder.
func LevelAt(ordinal int) Level {
	if ordinal < 0 {
		ordinal = 0
	}
	if ordinal >= levelsInOrder {
		ordinal = levelsInOrder - 1
	}
	return orderedLevels[ordinal]
}
