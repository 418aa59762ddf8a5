package payment_webhook

// Webhook event types delivered by the payment provider.
const (
	eventSessionCreated = "SESSION_CREATED"
	eventPaymentResult  = "PAYMENT_RESULT"
)

// WebhookRequest HTTP request model. SessionID is required for
// SESSION_CREATED; Outcome is required for PAYMENT_RESULT.
type WebhookRequest struct {
	Type       string  `json:"type"`
	BookingID  int64   `json:"bookingId"`
	SessionID  *string `json:"sessionId,omitempty"`
	Outcome    *string `json:"outcome,omitempty"` // "SUCCESS" | "FAILURE"
	PayerEmail *string `json:"payerEmail,omitempty"`
}

// WebhookResponse HTTP response model.
type WebhookResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status,omitempty"`
	Applied   bool   `json:"applied"`
}
