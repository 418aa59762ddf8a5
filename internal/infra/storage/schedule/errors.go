package schedule

import "errors"

var (
	// ErrScheduleDayNotFound is returned when a weekday has no schedule
	// entry. This is a configuration error, not "closed".
	ErrScheduleDayNotFound = errors.New("schedule.repository: schedule day not found")

	// ErrClosureNotFound is returned when no closure matches the query.
	ErrClosureNotFound = errors.New("schedule.repository: closure not found")

	// ErrBuildQuery is returned when SQL generation fails.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
