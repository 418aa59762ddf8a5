package reschedule_booking

import "errors"

var (
	// ErrInvalidInput is returned on malformed or missing request data.
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden is returned when the actor may not reschedule this
	// booking. Confirmed bookings are admin-only; pending holds belong to
	// their owner.
	ErrForbidden = errors.New("reschedule_booking: operation not allowed for this user")

	// ErrNotReschedulable is returned when the booking is in a terminal
	// state.
	ErrNotReschedulable = errors.New("reschedule_booking: booking can no longer be rescheduled")

	// ErrStartTimeInPast is returned when the new start already passed.
	ErrStartTimeInPast = errors.New("reschedule_booking: new start time is in the past")

	// ErrServiceNotFound is returned when the new service does not exist.
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrOptionNotFound is returned when the new option does not exist.
	ErrOptionNotFound = errors.New("reschedule_booking: service option not found")

	// ErrOptionMismatch is returned when the option belongs to a different
	// service than the booking lands on.
	ErrOptionMismatch = errors.New("reschedule_booking: option does not belong to the service")

	// ErrOptionInactive is returned when the option is no longer offered.
	ErrOptionInactive = errors.New("reschedule_booking: service option is not active")

	// ErrSlotTaken is returned when the new window overlaps another
	// blocking booking.
	ErrSlotTaken = errors.New("reschedule_booking: new slot is already taken")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("reschedule_booking: internal error")
)
