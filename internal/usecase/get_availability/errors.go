package get_availability

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog has no such service.
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrInvalidDate is returned when the requested date is in the past.
	ErrInvalidDate = errors.New("get_availability: date is in the past")

	// ErrScheduleNotConfigured is returned when the weekday has no schedule
	// entry at all. A missing entry is a configuration mistake, not a
	// closed day.
	ErrScheduleNotConfigured = errors.New("get_availability: no schedule configured for this day of week")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("get_availability: internal error")
)
