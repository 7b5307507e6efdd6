package rostercheck

import "errors"

// Error constants.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrStatus     = errors.New("unexpected status")
	ErrInvariant  = errors.New("roster invariant violated")
	ErrNoRequests = errors.New("no request succeeded")
)
