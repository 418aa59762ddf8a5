package get_user_bookings

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
	msgInvalidUserID = "invalid user id"
	msgInvalidStatus = "invalid status filter"
	msgAccessDenied  = "access denied"
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

// Handle GET /api/v1/users/{userId}/bookings?status={status}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// A customer sees only their own history
	actor := middleware.ActorFromContext(r.Context())
	if !actor.IsAdmin && (actor.UserID == nil || *actor.UserID != userID) {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetOwnerBookingsRequest{UserID: userID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetOwnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid status: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
