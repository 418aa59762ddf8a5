package create_hold

import (
	"fmt"
	"strings"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

// validateRequest checks the customer and slot fields. The email is
// normalised to lower case and whitespace around the customer fields is
// trimmed in place.
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is not an email address", ErrInvalidInput)
	}
	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ServiceOptionID != nil && *req.ServiceOptionID <= 0 {
		return fmt.Errorf("%w: serviceOptionID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateStartNotPast rejects a slot whose start already passed.
// Comparison is at minute resolution, matching the slot grid.
func validateStartNotPast(start, now time.Time) error {
	if start.Before(now.Truncate(time.Minute)) {
		return ErrStartTimeInPast
	}
	return nil
}

// hasOverlap reports whether any blocking booking intersects the half-open
// window [start, end), ignoring the booking with excludeID (used by
// reschedule to skip the booking's own row).
func hasOverlap(window domain.TimeRange, bookings []*domain.Booking, excludeID int64) bool {
	for _, booking := range bookings {
		if booking.ID == excludeID {
			continue
		}
		if !booking.IsBlocking() {
			continue
		}
		r, err := booking.Range()
		if err != nil {
			continue
		}
		if window.Overlaps(r) {
			return true
		}
	}
	return false
}
