package confirm_payment

// Outcome is the payment result reported by the payment provider.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
)

// Request is a payment webhook delivery.
type Request struct {
	BookingID int64
	Outcome   Outcome

	// SessionID and CustomerEmail are echoed by the provider and checked
	// against the stored booking. A mismatch is logged, never fatal: the
	// booking id is the source of truth.
	SessionID     *string
	CustomerEmail *string
}

// Response is the booking state after the webhook was applied.
type Response struct {
	BookingID int64
	Code      string
	Status    string
}
