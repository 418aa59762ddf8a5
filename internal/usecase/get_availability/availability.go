package get_availability

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

// computeOpenRanges applies closures to the day's business hours.
// Any full-day closure empties the day outright, regardless of hours;
// partial closures are cut out of the open windows one by one. Subtraction
// merges as it goes, so overlapping closures compose safely.
func computeOpenRanges(day *domain.ScheduleDay, closures []*domain.Closure) []domain.TimeRange {
	open := day.OpenRanges()
	if len(open) == 0 {
		return open
	}

	for _, closure := range closures {
		if closure.IsFullDay() {
			return []domain.TimeRange{}
		}
	}

	for _, closure := range closures {
		cut, ok := closure.Range()
		if !ok {
			continue
		}
		open = domain.SubtractAll(open, cut)
		if len(open) == 0 {
			break
		}
	}
	return open
}

// subtractBookings removes each blocking booking's interval from the open
// ranges. Only bookings on the requested date reach this point; a booking
// whose interval cannot be computed is skipped.
func subtractBookings(open []domain.TimeRange, bookings []*domain.Booking) []domain.TimeRange {
	for _, booking := range bookings {
		if !booking.IsBlocking() {
			continue
		}
		cut, err := booking.Range()
		if err != nil {
			continue
		}
		open = domain.SubtractAll(open, cut)
		if len(open) == 0 {
			break
		}
	}
	return open
}

// isDateInPast reports whether date falls before today's date.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
