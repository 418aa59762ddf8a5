package create_booking

import (
	"errors"
	"net/http"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/api/middleware"
	createHold "github.com/roccadavide/beauty-room-sub000/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid bookingDate or startTime, expected YYYY-MM-DD and HH:MM"
	msgInvalidInput       = "invalid booking data"
	msgStartInPast        = "start time is in the past"
	msgServiceNotFound    = "service not found"
	msgOptionNotFound     = "service option not found"
	msgOptionMismatch     = "service option does not belong to the service"
	msgOptionInactive     = "service option is not available"
	msgSlotTaken          = "slot is already taken"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: service_id=%d, date=%s %s",
				req.ServiceID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrOptionNotFound):
			h.logger.Warn("POST /bookings - Option not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, createHold.ErrOptionMismatch):
			h.logger.Warn("POST /bookings - Option mismatch: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgOptionMismatch)

		case errors.Is(err, createHold.ErrOptionInactive):
			h.logger.Warn("POST /bookings - Option inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgOptionInactive)

		case errors.Is(err, createHold.ErrStartTimeInPast):
			h.logger.Warn("POST /bookings - Start in past: date=%s %s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create hold: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Hold created: booking_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
