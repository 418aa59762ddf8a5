package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/infra/storage/booking"
	catalogClient "github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// UseCase moves a booking to a new slot, optionally changing the service,
// option and notes.
//
// The booking row is locked first, then the target (service, date) key is
// advisory-locked exactly as in hold creation, so a reschedule and a new
// hold racing for the same window serialize on the same lock. The overlap
// check skips the booking's own row: moving within an adjacent window never
// conflicts with itself.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase creates the reschedule use case.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute runs the use case.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: id=%d to %s %s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	newStart := combineDateTime(req.Date, req.StartTime.Minutes())
	if newStart.Before(now.Truncate(time.Minute)) {
		uc.logger.Warn("RescheduleBooking: new start %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrStartTimeInPast
	}

	// Catalog lookups happen outside the transaction so the advisory lock
	// is never held across an HTTP round trip.
	target, err := uc.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking
	var endTime types.TimeString

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := authorize(current, req.Actor); err != nil {
			uc.logger.Warn("RescheduleBooking: booking id=%d: %v", current.ID, err)
			return err
		}

		target.applyDefaults(current)

		if target.optionServiceID != 0 && target.optionServiceID != target.serviceID {
			uc.logger.Warn("RescheduleBooking: option id=%d belongs to service id=%d, not id=%d",
				*target.serviceOptionID, target.optionServiceID, target.serviceID)
			return ErrOptionMismatch
		}

		newEnd, err := req.StartTime.AddMinutes(target.durationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: window crosses midnight: start=%s duration=%d",
				req.StartTime, target.durationMinutes)
			return fmt.Errorf("%w: booking window must end the same day", ErrInvalidInput)
		}
		window := domain.TimeRange{Start: req.StartTime, End: newEnd}

		if err := uc.bookingRepo.LockServiceDay(txCtx, target.serviceID, req.Date); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock service day: %v", err)
			return fmt.Errorf("%w: failed to lock service day: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.AgendaFilter{
			ServiceID:    ptr.Ptr(target.serviceID),
			StartDate:    ptr.Ptr(req.Date),
			EndDate:      ptr.Ptr(req.Date),
			OnlyBlocking: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if hasOverlap(window, bookings, current.ID) {
			uc.logger.Warn("RescheduleBooking: slot %s-%s on %s already taken for service=%d",
				window.Start, window.End, req.Date.Format(domain.DateFormat), target.serviceID)
			return ErrSlotTaken
		}

		current.BookingDate = req.Date
		current.StartTime = req.StartTime
		current.DurationMinutes = target.durationMinutes
		current.ServiceID = target.serviceID
		current.ServiceOptionID = target.serviceOptionID
		current.ServiceName = target.serviceName
		current.ServicePrice = target.servicePrice
		if req.Notes != nil {
			current.Notes = req.Notes
		}

		if err := uc.bookingRepo.Reschedule(txCtx, current); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = current
		endTime = newEnd
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:              result.ID,
		Code:            result.Code,
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
	}, nil
}

// rescheduleTarget is the catalog data the move lands on. Fields left at
// their zero value fall back to the current booking via applyDefaults.
type rescheduleTarget struct {
	serviceChanged  bool
	serviceID       int64
	serviceOptionID *int64
	durationMinutes int
	serviceName     string
	servicePrice    float64
	optionServiceID int64
	optionPrice     *float64
}

// resolveTarget fetches the new service and option when the request changes
// them, running the same catalog checks as hold creation.
func (uc *UseCase) resolveTarget(ctx context.Context, req *Request) (*rescheduleTarget, error) {
	target := &rescheduleTarget{}

	if req.ServiceID != nil {
		service, err := uc.catalogClient.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("RescheduleBooking: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		target.serviceChanged = true
		target.serviceID = service.ID
		target.durationMinutes = service.DurationMinutes
		target.serviceName = service.Name
		if service.Price != nil {
			target.servicePrice = *service.Price
		}
	}

	if req.ServiceOptionID != nil {
		option, err := uc.catalogClient.GetServiceOption(ctx, *req.ServiceOptionID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrOptionNotFound) {
				uc.logger.Warn("RescheduleBooking: option id=%d not found", *req.ServiceOptionID)
				return nil, ErrOptionNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get option id=%d: %v", *req.ServiceOptionID, err)
			return nil, fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}
		if !option.Active {
			uc.logger.Warn("RescheduleBooking: option id=%d is inactive", option.ID)
			return nil, ErrOptionInactive
		}
		target.serviceOptionID = &option.ID
		target.optionServiceID = option.ServiceID
		target.optionPrice = option.Price
	}

	return target, nil
}

// applyDefaults fills the target from the current booking.
func (t *rescheduleTarget) applyDefaults(current *domain.Booking) {
	if !t.serviceChanged {
		t.serviceID = current.ServiceID
		t.durationMinutes = current.DurationMinutes
		t.serviceName = current.ServiceName
		t.servicePrice = current.ServicePrice
		if t.serviceOptionID == nil {
			t.serviceOptionID = current.ServiceOptionID
		}
	}
	if t.optionPrice != nil {
		t.servicePrice = *t.optionPrice
	}
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ServiceOptionID != nil && *req.ServiceOptionID <= 0 {
		return fmt.Errorf("%w: serviceOptionID must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// authorize applies the reschedule rules: terminal bookings never move,
// confirmed bookings move only by admin hand, pending holds move for the
// admin or the owning customer.
func authorize(b *domain.Booking, actor domain.Actor) error {
	if b.IsTerminal() {
		return ErrNotReschedulable
	}
	if actor.IsAdmin {
		return nil
	}
	if b.Status == domain.StatusConfirmed {
		return ErrForbidden
	}
	if actor.UserID == nil || !b.IsOwnedBy(*actor.UserID) {
		return ErrForbidden
	}
	return nil
}

// hasOverlap reports whether any blocking booking other than excludeID
// intersects the half-open window.
func hasOverlap(window domain.TimeRange, bookings []*domain.Booking, excludeID int64) bool {
	for _, b := range bookings {
		if b.ID == excludeID || !b.IsBlocking() {
			continue
		}
		r, err := b.Range()
		if err != nil {
			continue
		}
		if window.Overlaps(r) {
			return true
		}
	}
	return false
}

func combineDateTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, date.Location())
}
