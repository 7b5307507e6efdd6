package logger

import "errors"

var (
	// ErrUnknownLevel is returned for a level name slog does not know.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned for an output format other than text or json.
	ErrUnknownFormat = errors.New("unknown log format")
)
