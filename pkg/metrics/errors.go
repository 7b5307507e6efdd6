package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrInit = errors.New("metrics init failed")
)
