package cancel_booking

// CancelBookingRequest HTTP request model. The body is optional; a bare
// cancel carries no reason.
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}
