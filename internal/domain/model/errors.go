package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every ValidationError matches via errors.Is.
var ErrValidation = errors.New("invalid prospect record")

// ValidationError names the offending record and field.
type ValidationError struct {
	Index  int    // zero-based position in the source
	Name   string // record name, if it had one
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record %d (%s): %s: %s", e.Index, e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
