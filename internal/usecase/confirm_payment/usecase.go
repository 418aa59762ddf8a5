package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/infra/storage/booking"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/notifyqueue"
)

// UseCase applies payment webhook outcomes to a held booking.
//
// Webhooks are retried by the provider, so every transition is idempotent:
// a success webhook for an already-confirmed booking succeeds without
// touching the row, and any webhook for a terminal booking is a no-op. The
// row is locked FOR UPDATE for the duration of the transition so the sweeper
// cannot expire a hold that is being confirmed.
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     NotifyPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the payment confirmation use case.
func NewUseCase(
	bookingRepo BookingRepository,
	notifier NotifyPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// AttachSession records the payment session reference created for a hold.
// Returns ErrBookingNotFound when the booking does not exist or already left
// pending_payment, so a late session callback never overwrites history.
func (uc *UseCase) AttachSession(ctx context.Context, bookingID int64, sessionID string) error {
	if bookingID <= 0 || sessionID == "" {
		return fmt.Errorf("%w: bookingID and sessionID are required", ErrInvalidInput)
	}

	attached, err := uc.bookingRepo.AttachPaymentSession(ctx, bookingID, sessionID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to attach session to booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to attach payment session: %v", ErrInternal, err)
	}
	if !attached {
		uc.logger.Warn("ConfirmPayment: session %s not attached, booking id=%d is not pending", sessionID, bookingID)
		return ErrBookingNotFound
	}

	uc.logger.Info("ConfirmPayment: attached session %s to booking id=%d", sessionID, bookingID)
	return nil
}

// Execute applies a payment outcome to the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking id=%d, outcome=%s", req.BookingID, req.Outcome)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Outcome != OutcomeSuccess && req.Outcome != OutcomeFailure {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, req.Outcome)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking
	var confirmed bool

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		uc.checkEcho(current, req)

		switch {
		case current.Status == domain.StatusConfirmed && req.Outcome == OutcomeSuccess:
			// Retried success webhook, nothing to do
			uc.logger.Info("ConfirmPayment: booking id=%d already confirmed", current.ID)
			result = current
			return nil

		case current.IsTerminal():
			// Late webhook for a booking that already left the hold phase
			uc.logger.Warn("ConfirmPayment: booking id=%d is %s, webhook ignored", current.ID, current.Status)
			result = current
			return nil

		case current.Status == domain.StatusConfirmed && req.Outcome == OutcomeFailure:
			// A failure after a success would mean the provider contradicts
			// itself; keep the confirmation and flag it for investigation
			uc.logger.Error("ConfirmPayment: failure webhook for confirmed booking id=%d ignored", current.ID)
			result = current
			return nil
		}

		// current.Status == pending_payment from here on

		if req.Outcome == OutcomeFailure {
			if err := uc.bookingRepo.Cancel(txCtx, current.ID, domain.ReasonPaymentFailed); err != nil {
				uc.logger.Error("ConfirmPayment: failed to cancel booking id=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
			}
			current.Status = domain.StatusCancelled
			result = current
			return nil
		}

		if current.HoldLapsed(now) {
			// The sweeper has not reached this hold yet, but the window is
			// over: the slot may already be resold, so the payment must not
			// revive the booking
			if err := uc.bookingRepo.Cancel(txCtx, current.ID, domain.ReasonExpiredBeforeConfirmation); err != nil {
				uc.logger.Error("ConfirmPayment: failed to expire booking id=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to expire booking: %v", ErrInternal, err)
			}
			uc.logger.Warn("ConfirmPayment: hold on booking id=%d lapsed at %s, success webhook rejected",
				current.ID, current.HoldExpiresAt)
			return ErrHoldExpired
		}

		if err := uc.bookingRepo.Confirm(txCtx, current.ID); err != nil {
			uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}
		current.Status = domain.StatusConfirmed
		result = current
		confirmed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if confirmed {
		uc.logger.Info("ConfirmPayment: booking id=%d code=%s confirmed", result.ID, result.Code)
		// Enqueued after commit so the worker never sees an uncommitted
		// booking; a publish failure is logged and absorbed
		if err := uc.notifier.Publish(ctx, notifyqueue.Event{
			Type:       notifyqueue.EventBookingConfirmed,
			BookingID:  result.ID,
			Code:       result.Code,
			OccurredAt: now,
		}); err != nil {
			uc.logger.Error("ConfirmPayment: failed to enqueue confirmation event for booking id=%d: %v", result.ID, err)
		}
	}

	return &Response{
		BookingID: result.ID,
		Code:      result.Code,
		Status:    string(result.Status),
	}, nil
}

// checkEcho compares provider-echoed fields against the stored booking.
// Mismatches are logged for investigation but never change the outcome.
func (uc *UseCase) checkEcho(current *domain.Booking, req *Request) {
	if req.SessionID != nil && current.PaymentSessionID != nil && *req.SessionID != *current.PaymentSessionID {
		uc.logger.Warn("ConfirmPayment: session mismatch on booking id=%d: got %s, stored %s",
			current.ID, *req.SessionID, *current.PaymentSessionID)
	}
	if req.CustomerEmail != nil && *req.CustomerEmail != current.CustomerEmail {
		uc.logger.Warn("ConfirmPayment: email mismatch on booking id=%d", current.ID)
	}
}
