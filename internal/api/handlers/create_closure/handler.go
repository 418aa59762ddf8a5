package create_closure

import (
	"errors"
	"net/http"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	scheduleService "github.com/roccadavide/beauty-room-sub000/internal/service/schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidClosure     = "invalid closure data"
	msgDateInPast         = "closure date is in the past"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateClosure(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrDateInPast):
			h.logger.Warn("POST /closures - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /closures - Invalid closure: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClosure)

		default:
			h.logger.Error("POST /closures - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /closures - Created: closure_id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
