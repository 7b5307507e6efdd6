package repository

import "errors"

// Sentinel kinds for roster repository errors.
var (
	ErrNotFound          = errors.New("prospect not found")
	ErrDecode            = errors.New("decode roster failed")
	ErrSourceUnavailable = errors.New("roster source unavailable")
	ErrEmptyRoster       = errors.New("roster source returned no prospects")
)
