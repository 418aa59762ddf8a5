package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	confirmPayment "github.com/roccadavide/beauty-room-sub000/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnknownEventType   = "unknown event type"
	msgMissingSessionID   = "sessionId is required for SESSION_CREATED"
	msgMissingOutcome     = "outcome is required for PAYMENT_RESULT"
	msgBookingNotFound    = "booking not found"
	msgHoldExpired        = "hold expired before confirmation, payment must be refunded"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
//
// The provider retries deliveries until it sees a 2xx, so business no-ops
// (late result for a cancelled booking, duplicate success) answer 200. The
// expired-hold case answers 409: the provider holds the money and must
// start a refund.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Type {
	case eventSessionCreated:
		h.handleSessionCreated(w, r, &req)
	case eventPaymentResult:
		h.handlePaymentResult(w, r, &req)
	default:
		h.logger.Warn("POST /payments/webhook - Unknown event type: %q", req.Type)
		handlers.RespondBadRequest(w, msgUnknownEventType)
	}
}

func (h *Handler) handleSessionCreated(w http.ResponseWriter, r *http.Request, req *WebhookRequest) {
	if req.SessionID == nil || *req.SessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	err := h.useCase.AttachSession(r.Context(), req.BookingID, *req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			// The hold may have expired between session creation and this
			// callback; acknowledged so the provider stops retrying
			h.logger.Warn("POST /payments/webhook - Session not attached: booking_id=%d", req.BookingID)
			handlers.RespondJSON(w, http.StatusOK, WebhookResponse{BookingID: req.BookingID, Applied: false})

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/webhook - Failed to attach session: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{BookingID: req.BookingID, Applied: true})
}

func (h *Handler) handlePaymentResult(w http.ResponseWriter, r *http.Request, req *WebhookRequest) {
	if req.Outcome == nil {
		handlers.RespondBadRequest(w, msgMissingOutcome)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingID:     req.BookingID,
		Outcome:       confirmPayment.Outcome(*req.Outcome),
		SessionID:     req.SessionID,
		CustomerEmail: req.PayerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrHoldExpired):
			h.logger.Warn("POST /payments/webhook - Hold expired: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgHoldExpired)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/webhook - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/webhook - Failed to apply result: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Result applied: booking_id=%d, status=%s",
		result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{
		BookingID: result.BookingID,
		Status:    result.Status,
		Applied:   true,
	})
}
