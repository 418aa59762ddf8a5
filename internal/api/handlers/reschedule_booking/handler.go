package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/api/middleware"
	rescheduleBooking "github.com/roccadavide/beauty-room-sub000/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid bookingDate or startTime, expected YYYY-MM-DD and HH:MM"
	msgInvalidInput       = "invalid reschedule data"
	msgBookingNotFound    = "booking not found"
	msgForbidden          = "operation not allowed for this user"
	msgNotReschedulable   = "booking can no longer be rescheduled"
	msgStartInPast        = "new start time is in the past"
	msgSlotTaken          = "new slot is already taken"
	msgServiceNotFound    = "service not found"
	msgOptionNotFound     = "service option not found"
	msgOptionMismatch     = "service option does not belong to the service"
	msgOptionInactive     = "service option is not available"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, middleware.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Forbidden: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrStartTimeInPast):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Start in past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Service not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrOptionNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Option not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, rescheduleBooking.ErrOptionMismatch):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Option mismatch: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOptionMismatch)

		case errors.Is(err, rescheduleBooking.ErrOptionInactive):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Option inactive: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOptionInactive)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id}/reschedule - Rescheduled: booking_id=%d to %s %s",
		bookingID, response.BookingDate, response.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
