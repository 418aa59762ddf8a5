package update_booking_status

import (
	"errors"
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
	msgInvalidStatus      = "invalid status"
	msgSameStatus         = "booking already has this status"
	msgCannotTransition   = "cancelled bookings cannot change status"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), bookingID, &models.UpdateStatusRequest{
		Actor:  middleware.ActorFromContext(r.Context()),
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrSameStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Same status: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgSameStatus)

		case errors.Is(err, bookings.ErrCannotTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Transition refused: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgCannotTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Updated: booking_id=%d, status=%s", bookingID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
