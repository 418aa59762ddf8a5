package confirm_payment

import "errors"

var (
	// ErrInvalidInput is returned on malformed or missing webhook data.
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrBookingNotFound is returned when no booking matches the webhook.
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrHoldExpired is returned when a success webhook arrives after the
	// hold window lapsed. The booking is cancelled, not confirmed.
	ErrHoldExpired = errors.New("confirm_payment: hold expired before confirmation")

	// ErrInternal is returned on infrastructure failures.
	ErrInternal = errors.New("confirm_payment: internal error")
)
