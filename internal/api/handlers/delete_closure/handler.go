package delete_closure

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	scheduleService "github.com/roccadavide/beauty-room-sub000/internal/service/schedule"
)

const (
	msgInvalidClosureID = "invalid closure id"
	msgClosureNotFound  = "closure not found"
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

// Handle DELETE /api/v1/closures/{closureId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	closureID, err := strconv.ParseInt(mux.Vars(r)["closureId"], 10, 64)
	if err != nil || closureID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidClosureID)
		return
	}

	if err := h.service.DeleteClosure(r.Context(), closureID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrClosureNotFound):
			h.logger.Warn("DELETE /closures/{id} - Not found: closure_id=%d", closureID)
			handlers.RespondNotFound(w, msgClosureNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidClosureID)

		default:
			h.logger.Error("DELETE /closures/{id} - Failed: closure_id=%d, error=%v", closureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /closures/{id} - Deleted: closure_id=%d", closureID)
	w.WriteHeader(http.StatusNoContent)
}
