package storage

import "errors"

// Storage errors.
var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownBackend is returned for an unrecognized store backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
)
