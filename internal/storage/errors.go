package storage

import "errors"

// Storage errors shared by all ReportStore implementations.
var (
	// ErrNotFound is returned when no non-expired report exists for an
	// address.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
