package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/api/middleware"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgCannotCancel       = "booking can no longer be cancelled"
	msgRefundRequired     = "cancelling a paid booking requires contacting the salon"
	msgTooLate            = "too late to cancel this booking"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		Actor:  middleware.ActorFromContext(r.Context()),
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrRefundRequired):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Refund required: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgRefundRequired)

		case errors.Is(err, bookings.ErrTooLateToCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Too late: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgTooLate)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Cancelled: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
