package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString represents a local time of day in "HH:MM" format.
// Comparisons and arithmetic stay at minute resolution, which is the
// granularity the booking engine works with.
type TimeString string

// ErrInvalidTimeString is returned when a string is not a valid "HH:MM" time.
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

const timeLayout = "15:04"

// NewTimeString creates a TimeString from a time.Time, truncating to the minute.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
// Values outside a single day are rejected.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes is outside the day", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the number of minutes since midnight.
// The value must be valid; invalid values return 0.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. An error is returned if the result crosses midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal reports whether t and other denote the same minute.
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}
