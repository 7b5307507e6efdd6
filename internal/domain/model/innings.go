package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const outsPerInning = 3

// ErrInningsNotation is returned for innings strings that are not in the
// traditional whole.outs form (e.g. "112.1").
var ErrInningsNotation = errors.New("invalid innings pitched notation")

// InningsPitched counts innings in baseball notation: whole innings plus the
// outs recorded in a partial inning. "112.1" is 112 innings and one out,
// i.e. 112⅓ innings, not 112.1.
type InningsPitched struct {
	Whole int
	Outs  int // 0, 1 or 2
}

// InningsFromOuts converts a raw out count into innings pitched.
func InningsFromOuts(outs int) InningsPitched {
	if outs < 0 {
		outs = 0
	}
	return InningsPitched{Whole: outs / outsPerInning, Outs: outs % outsPerInning}
}

// ParseInnings parses the traditional notation. A single fractional digit
// of 0, 1 or 2 is accepted; anything else is rejected.
func ParseInnings(s string) (InningsPitched, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return InningsPitched{}, fmt.Errorf("%w: empty", ErrInningsNotation)
	}
	wholePart, fracPart, hasFrac := strings.Cut(s, ".")
	whole, err := strconv.Atoi(wholePart)
	if err != nil || whole < 0 || strings.HasPrefix(wholePart, "+") {
		return InningsPitched{}, fmt.Errorf("%w: %q", ErrInningsNotation, s)
	}
	if !hasFrac {
		return InningsPitched{Whole: whole}, nil
	}
	if len(fracPart) != 1 || fracPart[0] < '0' || fracPart[0] > '2' {
		return InningsPitched{}, fmt.Errorf("%w: %q", ErrInningsNotation, s)
	}
	return InningsPitched{Whole: whole, Outs: int(fracPart[0] - '0')}, nil
}

// TotalOuts returns the number of outs recorded.
func (ip InningsPitched) TotalOuts() int {
	return ip.Whole*outsPerInning + ip.Outs
}

// Innings returns true innings (112.1 -> 112.333...), for rate statistics.
func (ip InningsPitched) Innings() float64 {
	return float64(ip.Whole) + float64(ip.Outs)/outsPerInning
}

// IsZero reports whether no outs were recorded.
func (ip InningsPitched) IsZero() bool {
	return ip.TotalOuts() == 0
}

// Valid reports whether both components are in range.
func (ip InningsPitched) Valid() bool {
	return ip.Whole >= 0 && ip.Outs >= 0 && ip.Outs < outsPerInning
}

// Add sums two innings counts, carrying outs into whole innings.
func (ip InningsPitched) Add(other InningsPitched) InningsPitched {
	return InningsFromOuts(ip.TotalOuts() + other.TotalOuts())
}

// String renders the traditional notation.
func (ip InningsPitched) String() string {
	return strconv.Itoa(ip.Whole) + "." + strconv.Itoa(ip.Outs)
}

// MarshalJSON encodes the notation as a bare JSON number, e.g. 112.1.
func (ip InningsPitched) MarshalJSON() ([]byte, error) {
	return []byte(ip.String()), nil
}

// UnmarshalJSON accepts a JSON number or string in traditional notation.
func (ip *InningsPitched) UnmarshalJSON(data []byte) error {
	parsed, err := ParseInnings(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}

// UnmarshalYAML reads the scalar text directly so 112.1 never passes through float64.
func (ip *InningsPitched) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrInningsNotation, value.Line)
	}
	parsed, err := ParseInnings(value.Value)
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}
