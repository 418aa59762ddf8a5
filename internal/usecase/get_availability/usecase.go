package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	scheduleRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/schedule"
	catalogClient "github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
)

// UseCase computes the bookable slots of a service on a date.
//
// This is the read path: it takes no locks and returns a snapshot. A slot
// shown as free can still lose the race to a concurrent hold; the conflict
// is resolved at reservation time, not here.
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase creates the availability use case.
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute runs the availability computation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Validate the request
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Load the service for its duration; step equals duration, so the
	// offered slots are fixed-size and never overlap
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	stepMinutes := service.DurationMinutes

	// 3. Resolve business hours; a missing weekday entry is a
	// configuration error, a closed day is a normal empty result
	day, err := uc.scheduleRepo.GetDay(ctx, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleDayNotFound) {
			uc.logger.Warn("GetAvailability: no schedule entry for weekday %s", req.Date.Weekday())
			return nil, ErrScheduleNotConfigured
		}
		uc.logger.Error("GetAvailability: failed to get schedule day: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule day: %v", ErrInternal, err)
	}

	// 4. Apply closures
	closures, err := uc.scheduleRepo.GetClosuresByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}

	open := computeOpenRanges(day, closures)
	if len(open) == 0 {
		uc.logger.Info("GetAvailability: no open ranges for service=%d on %s",
			req.ServiceID, req.Date.Format(domain.DateFormat))
		return uc.respond(req, stepMinutes, []domain.TimeRange{}), nil
	}

	// 5. Subtract the blocking bookings of the same service and date
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.AgendaFilter{
		ServiceID:    ptr.Ptr(req.ServiceID),
		StartDate:    ptr.Ptr(req.Date),
		EndDate:      ptr.Ptr(req.Date),
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	free := subtractBookings(open, bookings)

	// 6. Generate the slots
	slots := domain.GenerateSlots(free, service.DurationMinutes, stepMinutes)

	uc.logger.Info("GetAvailability: %d slots for service=%d on %s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))
	return uc.respond(req, stepMinutes, slots), nil
}

func (uc *UseCase) respond(req *Request, stepMinutes int, slots []domain.TimeRange) *Response {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Start: s.Start, End: s.End}
	}
	return &Response{
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StepMinutes: stepMinutes,
		Slots:       out,
	}
}
