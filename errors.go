package hohmann

import "errors"

var (
	// ErrConfiguration is returned when a call introduces an invalid value
	// (non-positive radius, μ or duration, eccentricity outside [0, 1)).
	// The engine state is left unchanged.
	ErrConfiguration = errors.New("configuration error")
	// ErrNumeric flags a domain violation inside the orbital computations,
	// such as a negative value under a square root. It is a defect, not a
	// recoverable condition.
	ErrNumeric = errors.New("numeric error")
	// ErrInvalidCommand is returned for commands which are ignored, e.g. a
	// transfer request while a transfer is in progress.
	ErrInvalidCommand = errors.New("invalid command")
)
