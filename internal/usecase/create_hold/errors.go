package create_hold

import "errors"

var (
	// ErrInvalidInput is returned on malformed or missing request data.
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrStartTimeInPast is returned when the requested start already passed.
	ErrStartTimeInPast = errors.New("create_hold: start time is in the past")

	// ErrServiceNotFound is returned when the catalog has no such service.
	ErrServiceNotFound = errors.New("create_hold: service not found")

	// ErrOptionNotFound is returned when the catalog has no such option.
	ErrOptionNotFound = errors.New("create_hold: service option not found")

	// ErrOptionMismatch is returned when the option belongs to a different
	// service than the one requested.
	ErrOptionMismatch = errors.New("create_hold: option does not belong to the service")

	// ErrOptionInactive is returned when the option is no longer offered.
	ErrOptionInactive = errors.New("create_hold: service option is not active")

	// ErrSlotTaken is returned when the requested window overlaps a
	// blocking booking. The caller should re-query availability.
	ErrSlotTaken = errors.New("create_hold: slot is already taken")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("create_hold: internal error")
)
