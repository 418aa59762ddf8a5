package schedule

import "errors"

var (
	// ErrInvalidInput is returned on malformed schedule or closure data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrClosureNotFound is returned when the closure does not exist.
	ErrClosureNotFound = errors.New("closure not found")

	// ErrDateInPast is returned when a closure targets a past date.
	ErrDateInPast = errors.New("closure date is in the past")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("service: internal error")
)
