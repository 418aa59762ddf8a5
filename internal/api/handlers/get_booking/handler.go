package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/api/middleware"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
	msgAccessDenied     = "access denied"
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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/{id} - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByCode GET /api/v1/bookings/code/{code}
//
// The reference code is an unguessable capability printed on the booking
// confirmation, so this route needs no identity.
func (h *Handler) HandleByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/code/{code} - Not found: code=%s", code)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/code/{code} - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
