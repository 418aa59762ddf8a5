package domain

import "errors"

// ErrInvalidTimeRange is returned when a range's start is not strictly
// before its end.
var ErrInvalidTimeRange = errors.New("domain: invalid time range")
