package get_agenda

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
)

const (
	msgInvalidDate    = "invalid date, expected YYYY-MM-DD"
	msgInvalidService = "invalid service parameter"
	msgInvalidFilter  = "invalid filter"
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

// Handle GET /api/v1/agenda?from={date}&to={date}&service={id}&status={status}&includeInactive={bool}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.GetAgendaRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &to
	}
	if raw := query.Get("service"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidService)
			return
		}
		req.ServiceID = &serviceID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetAgenda(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /agenda - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /agenda - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
