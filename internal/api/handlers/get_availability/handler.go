package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	getAvailability "github.com/roccadavide/beauty-room-sub000/internal/usecase/get_availability"
)

const (
	msgInvalidServiceID      = "invalid or missing service parameter"
	msgInvalidDate           = "invalid date, expected YYYY-MM-DD and not in the past"
	msgServiceNotFound       = "service not found"
	msgScheduleNotConfigured = "no business hours configured for this day"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?service={id}&date={YYYY-MM-DD}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(r.URL.Query().Get("service"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /availability - Invalid service parameter: %q", r.URL.Query().Get("service"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date parameter: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid request: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrScheduleNotConfigured):
			h.logger.Warn("GET /availability - Schedule not configured for date=%s", date.Format(domain.DateFormat))
			handlers.RespondUnprocessable(w, msgScheduleNotConfigured)

		default:
			h.logger.Error("GET /availability - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
