package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the query.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBuildQuery is returned when SQL generation fails.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
