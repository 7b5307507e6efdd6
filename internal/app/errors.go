package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrInvalidLimit  = errors.New("limit must be a positive integer")
	ErrLimitExceeded = errors.New("limit exceeds maximum")
)
