package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	bookingRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/booking"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
)

// Service answers booking reads and applies the lifecycle transitions that
// need no slot locking: cancellation and administrative status updates.
type Service struct {
	bookingRepo          BookingRepository
	timeProvider         TimeProvider
	logger               Logger
	cancellationLeadTime time.Duration
}

// NewService creates a bookings service. leadTimeHours is the minimum
// notice a customer must give before cancelling.
func NewService(bookingRepo BookingRepository, leadTimeHours int, logger Logger) *Service {
	if leadTimeHours <= 0 {
		leadTimeHours = domain.DefaultCancellationLeadTimeHours
	}
	return &Service{
		bookingRepo:          bookingRepo,
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
		cancellationLeadTime: time.Duration(leadTimeHours) * time.Hour,
	}
}

// GetByID fetches a booking. Customers see only their own bookings; guest
// bookings (no owner) are visible to admins only.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := checkAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetByCode fetches a booking by its public reference code. The code is an
// unguessable capability handed out at creation, so no further access check
// applies.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.BookingResponse, error) {
	s.logger.Info("GetByCode: fetching booking code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings returns the booking history of a user, newest first,
// optionally filtered by status.
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetOwnerBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByOwner(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAgenda returns bookings over a date range for the salon agenda.
// Cancelled and no-show bookings are excluded unless requested.
func (s *Service) GetAgenda(ctx context.Context, req *models.GetAgendaRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAgenda: fetching agenda, from=%v, to=%v, service=%v", req.StartDate, req.EndDate, req.ServiceID)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetAgenda: end date before start date")
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAgenda: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAgenda: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAgenda - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAgenda: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a booking.
//
// Rules: cancelling an already-cancelled booking is an idempotent no-op;
// completed and no-show bookings cannot be cancelled; a customer may only
// cancel their own booking, never a confirmed (paid) one, and only with
// enough notice before the start. The recorded reason says who cancelled;
// any free-text reason from the request goes to the log.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if booking.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking id=%d already cancelled", bookingID)
		return nil
	}
	if booking.Status == domain.StatusCompleted || booking.Status == domain.StatusNoShow {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	reason := domain.ReasonCancelledByAdmin
	if !req.Actor.IsAdmin {
		if req.Actor.UserID == nil || !booking.IsOwnedBy(*req.Actor.UserID) {
			s.logger.Warn("Cancel: access denied to booking id=%d", bookingID)
			return ErrAccessDenied
		}
		if booking.Status == domain.StatusConfirmed {
			s.logger.Warn("Cancel: booking id=%d is paid, self-service cancellation refused", bookingID)
			return ErrRefundRequired
		}
		if s.timeProvider.Now().Add(s.cancellationLeadTime).After(booking.StartDateTime()) {
			s.logger.Warn("Cancel: booking id=%d starts within the lead time", bookingID)
			return ErrTooLateToCancel
		}
		reason = domain.ReasonCancelledByCustomer
	}

	if req.Reason != nil && *req.Reason != "" {
		if len(*req.Reason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		s.logger.Info("Cancel: booking id=%d, stated reason: %s", bookingID, *req.Reason)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d, reason=%s", bookingID, reason)
	return nil
}

// UpdateStatus applies an administrative status transition. No-op
// transitions are rejected, and a cancelled booking never changes status
// again. Moving to completed stamps the completion time; moving to
// cancelled records the admin as the canceller.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	if !req.Actor.IsAdmin {
		s.logger.Warn("UpdateStatus: non-admin actor on booking id=%d", bookingID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	if booking.Status == newStatus {
		s.logger.Warn("UpdateStatus: booking id=%d already %s", bookingID, newStatus)
		return ErrSameStatus
	}
	if booking.Status == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: booking id=%d is cancelled, transition refused", bookingID)
		return ErrCannotTransition
	}

	if newStatus == domain.StatusCancelled {
		err = s.bookingRepo.Cancel(ctx, bookingID, domain.ReasonCancelledByAdmin)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to %s", bookingID, newStatus)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64, method string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// checkAccess allows the admin and the booking's owner.
func checkAccess(b *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.UserID != nil && b.IsOwnedBy(*actor.UserID) {
		return nil
	}
	return ErrAccessDenied
}
