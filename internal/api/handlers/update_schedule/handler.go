package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	scheduleService "github.com/roccadavide/beauty-room-sub000/internal/service/schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
)

const (
	msgInvalidDayOfWeek   = "invalid day of week, expected 0 (Sunday) to 6 (Saturday)"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSchedule    = "invalid schedule data"
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

// Handle PUT /api/v1/schedule/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpsertDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// The path segment is authoritative
	req.DayOfWeek = dayOfWeek

	result, err := h.service.UpsertDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/{day} - Invalid schedule: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /schedule/{day} - Failed: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/{day} - Updated: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
