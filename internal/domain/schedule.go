package domain

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// ScheduleDay is the weekly business-hours entry for one day of the week.
// A day has up to two open windows (morning and afternoon); a closed day
// has none. At most one entry exists per weekday.
type ScheduleDay struct {
	ID        int64
	DayOfWeek time.Weekday
	Closed    bool

	MorningStart   *types.TimeString
	MorningEnd     *types.TimeString
	AfternoonStart *types.TimeString
	AfternoonEnd   *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpenRanges returns the valid open windows of the day, in order.
// A window that is present but malformed (start >= end) is dropped rather
// than surfaced; the legacy data contains such rows and admins fix them
// through the schedule endpoints.
func (d *ScheduleDay) OpenRanges() []TimeRange {
	if d.Closed {
		return []TimeRange{}
	}

	ranges := make([]TimeRange, 0, 2)
	for _, w := range [][2]*types.TimeString{
		{d.MorningStart, d.MorningEnd},
		{d.AfternoonStart, d.AfternoonEnd},
	} {
		if w[0] == nil || w[1] == nil {
			continue
		}
		r, err := NewTimeRange(*w[0], *w[1])
		if err != nil {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// Closure is an ad-hoc restriction of availability on a single date.
// A closure without a window blocks the whole day.
type Closure struct {
	ID        int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFullDay reports whether the closure blocks the entire day.
func (c *Closure) IsFullDay() bool {
	return c.StartTime == nil || c.EndTime == nil
}

// Range returns the partial-closure window, or false for full-day closures
// and malformed windows.
func (c *Closure) Range() (TimeRange, bool) {
	if c.IsFullDay() {
		return TimeRange{}, false
	}
	r, err := NewTimeRange(*c.StartTime, *c.EndTime)
	if err != nil {
		return TimeRange{}, false
	}
	return r, true
}
