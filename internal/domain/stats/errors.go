package stats

import "errors"

// Sentinel kinds for stats errors.
var (
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrUnknownDirection = errors.New("unknown sort direction")
)
