package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the actor is neither the owner nor
	// an admin.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is completed or marked
	// no-show and can no longer be cancelled.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrRefundRequired is returned when a customer tries to cancel a paid
	// booking themselves. Cancelling a confirmed booking refunds money and
	// goes through the salon.
	ErrRefundRequired = errors.New("cancellation of a paid booking requires the refund procedure")

	// ErrTooLateToCancel is returned when the cancellation lead time has
	// passed for a non-admin actor.
	ErrTooLateToCancel = errors.New("too late to cancel this booking")

	// ErrInvalidStatus is returned for an unknown target status.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrSameStatus is returned for a no-op status transition.
	ErrSameStatus = errors.New("booking already has this status")

	// ErrCannotTransition is returned for a transition out of cancelled.
	ErrCannotTransition = errors.New("cancelled bookings cannot change status")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("service: internal error")
)
