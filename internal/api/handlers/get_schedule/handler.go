package get_schedule

import (
	"net/http"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
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

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSchedule(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
