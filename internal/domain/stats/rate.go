package stats

import (
	"math"

	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Rate is a derived ratio that may be undefined (zero denominator).
// Undefined rates encode as JSON null.
type Rate struct {
	Value   float64
	Defined bool
}

// Ratio divides a by b. A zero or non-finite denominator, or a non-finite
// result, yields an undefined Rate.
func Ratio(a, b float64) Rate {
	if b == 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return Rate{}
	}
	v := a / b
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rate{}
	}
	return Rate{Value: v, Defined: true}
}

// Value wraps a plain number. NaN and infinities are undefined.
func Value(v float64) Rate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rate{}
	}
	return Rate{Value: v, Defined: true}
}

// StrikeoutsPerInning computes K/IP over true innings.
func StrikeoutsPerInning(p model.PitchingLine) Rate {
	return Ratio(float64(p.SO), p.IP.Innings())
}

// Float returns the value, or NaN when undefined.
func (r Rate) Float() float64 {
	if !r.Defined {
		return math.NaN()
	}
	return r.Value
}

// Round rounds half away from zero to the given number of decimal places.
func (r Rate) Round(places int32) Rate {
	if !r.Defined {
		return r
	}
	v, _ := decimal.NewFromFloat(r.Value).Round(places).Float64()
	return Rate{Value: v, Defined: true}
}

// MarshalJSON encodes the value as a number, or null when undefined.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Defined || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return []byte("null"), nil
	}
	return []byte(decimal.NewFromFloat(r.Value).String()), nil
}

// UnmarshalJSON accepts a number or null.
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rate{}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	v, _ := d.Float64()
	*r = Rate{Value: v, Defined: true}
	return nil
}
