package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	catalogClient "github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
)

// UseCase creates a payment hold on a slot.
//
// The overlap check and the insert run inside one transaction under an
// advisory lock keyed by (service, date): a concurrent hold for an
// overlapping window blocks on the lock, re-evaluates the overlap once the
// first transaction commits, and fails cleanly with ErrSlotTaken. This
// lock-check-insert sequence is the single mechanism preventing
// double-booking.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	holdMinutes   int
}

// NewUseCase creates the hold-creation use case.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	holdMinutes int,
	logger Logger,
) *UseCase {
	if holdMinutes <= 0 {
		holdMinutes = domain.DefaultHoldMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		holdMinutes:   holdMinutes,
	}
}

// Execute runs the use case.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: service=%d, date=%s, start=%s, email=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	// 1. Validate and normalise the request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Reject a start in the past
	startAt := combineDateTime(req.Date, req.StartTime.Minutes())
	if err := validateStartNotPast(startAt, now); err != nil {
		uc.logger.Warn("CreateHold: start %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, err
	}

	// 3. Load the service; the duration defines the reserved window
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateHold: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateHold: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	price := servicePrice(service.Price)

	// 4. Verify the option belongs to the service and is active
	if req.ServiceOptionID != nil {
		option, err := uc.catalogClient.GetServiceOption(ctx, *req.ServiceOptionID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrOptionNotFound) {
				uc.logger.Warn("CreateHold: option id=%d not found", *req.ServiceOptionID)
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("CreateHold: failed to get option id=%d: %v", *req.ServiceOptionID, err)
			return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		if option.ServiceID != req.ServiceID {
			uc.logger.Warn("CreateHold: option id=%d belongs to service id=%d, not id=%d",
				option.ID, option.ServiceID, req.ServiceID)
			return nil, ErrOptionMismatch
		}
		if !option.Active {
			uc.logger.Warn("CreateHold: option id=%d is inactive", option.ID)
			return nil, ErrOptionInactive
		}
		if option.Price != nil {
			price = *option.Price
		}
	}

	// 5. Compute the reserved window; a duration crossing midnight is
	// rejected by the time arithmetic
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateHold: window crosses midnight: start=%s duration=%d",
			req.StartTime, service.DurationMinutes)
		return nil, fmt.Errorf("%w: booking window must end the same day", ErrInvalidInput)
	}
	window := domain.TimeRange{Start: req.StartTime, End: endTime}

	holdExpiresAt := now.Add(time.Duration(uc.holdMinutes) * time.Minute)

	var result *domain.Booking

	// 6. Critical section: lock the (service, date) key, re-read the
	// blocking bookings, check the overlap, insert the hold
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockServiceDay(txCtx, req.ServiceID, req.Date); err != nil {
			uc.logger.Error("CreateHold: failed to lock service day: %v", err)
			return fmt.Errorf("%w: failed to lock service day: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.AgendaFilter{
			ServiceID:    ptr.Ptr(req.ServiceID),
			StartDate:    ptr.Ptr(req.Date),
			EndDate:      ptr.Ptr(req.Date),
			OnlyBlocking: true,
		})
		if err != nil {
			uc.logger.Error("CreateHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if hasOverlap(window, bookings, 0) {
			uc.logger.Warn("CreateHold: slot %s-%s on %s already taken for service=%d",
				window.Start, window.End, req.Date.Format(domain.DateFormat), req.ServiceID)
			return ErrSlotTaken
		}

		booking := &domain.Booking{
			Code:            uuid.NewString(),
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			OwnerUserID:     req.OwnerUserID,
			ServiceID:       req.ServiceID,
			ServiceOptionID: req.ServiceOptionID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPendingPayment,
			ServiceName:     service.Name,
			ServicePrice:    price,
			Notes:           req.Notes,
			HoldExpiresAt:   &holdExpiresAt,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateHold: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: created hold id=%d code=%s, expires at %s",
		result.ID, result.Code, holdExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		Code:            result.Code,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		ServiceID:       result.ServiceID,
		ServiceOptionID: result.ServiceOptionID,
		Date:            result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		HoldExpiresAt:   holdExpiresAt,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// servicePrice extracts the price, defaulting to 0 when the catalog has none.
func servicePrice(price *float64) float64 {
	if price == nil {
		return 0.0
	}
	return *price
}

// combineDateTime builds a business-local instant from a date and minutes
// since midnight.
func combineDateTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, date.Location())
}
