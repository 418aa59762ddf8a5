package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	bookingRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/booking"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

type mockBookingRepo struct {
	getByIDFn       func(ctx context.Context, id int64) (*domain.Booking, error)
	getByCodeFn     func(ctx context.Context, code string) (*domain.Booking, error)
	getByOwnerFn    func(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	getWithFilterFn func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)

	cancelledID   *int64
	cancelReason  string
	updatedID     *int64
	updatedStatus domain.BookingStatus
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockBookingRepo) GetByOwner(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.getByOwnerFn(ctx, userID, status)
}

func (m *mockBookingRepo) GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
	return m.getWithFilterFn(ctx, filter)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	m.cancelledID = &id
	m.cancelReason = reason
	return nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	m.updatedID = &id
	m.updatedStatus = status
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo *mockBookingRepo) *Service {
	svc := NewService(repo, 24, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func bookingOwnedBy(ownerID int64, status domain.BookingStatus, startsAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		Code:            "ref-abc",
		OwnerUserID:     &ownerID,
		ServiceID:       1,
		BookingDate:     time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, startsAt.Location()),
		StartTime:       types.NewTimeString(startsAt),
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Haircut",
	}
}

func ownerActor(userID int64) domain.Actor {
	return domain.Actor{UserID: &userID}
}

var adminActor = domain.Actor{IsAdmin: true}

func TestGetByID_Access(t *testing.T) {
	booking := bookingOwnedBy(7, domain.StatusConfirmed, testNow.Add(48*time.Hour))
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return booking, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 1, ownerActor(7))
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, adminActor)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, ownerActor(8))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 1, domain.Actor{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, adminActor)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByCode(t *testing.T) {
	repo := &mockBookingRepo{
		getByCodeFn: func(ctx context.Context, code string) (*domain.Booking, error) {
			if code != "ref-abc" {
				return nil, bookingRepo.ErrBookingNotFound
			}
			return bookingOwnedBy(7, domain.StatusConfirmed, testNow.Add(48*time.Hour)), nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetByCode(context.Background(), "ref-abc")
	require.NoError(t, err)
	assert.Equal(t, "ref-abc", resp.Code)

	_, err = svc.GetByCode(context.Background(), "ref-other")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOwnerBookings(t *testing.T) {
	repo := &mockBookingRepo{
		getByOwnerFn: func(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
			require.NotNil(t, status)
			assert.Equal(t, domain.StatusConfirmed, *status)
			return []*domain.Booking{bookingOwnedBy(userID, domain.StatusConfirmed, testNow.Add(48*time.Hour))}, nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("on_hold"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAgenda_DateOrder(t *testing.T) {
	svc := newTestService(&mockBookingRepo{})

	from := testNow
	to := testNow.AddDate(0, 0, -1)
	_, err := svc.GetAgenda(context.Background(), &models.GetAgendaRequest{
		StartDate: &from,
		EndDate:   &to,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_Rules(t *testing.T) {
	farFuture := testNow.Add(72 * time.Hour)
	soon := testNow.Add(2 * time.Hour)

	tests := []struct {
		name       string
		booking    *domain.Booking
		req        *models.CancelBookingRequest
		wantErr    error
		wantCancel bool
		wantReason string
	}{
		{
			name:       "owner cancels a pending hold with notice",
			booking:    bookingOwnedBy(7, domain.StatusPendingPayment, farFuture),
			req:        &models.CancelBookingRequest{Actor: ownerActor(7)},
			wantCancel: true,
			wantReason: domain.ReasonCancelledByCustomer,
		},
		{
			name:       "admin cancels anything",
			booking:    bookingOwnedBy(7, domain.StatusConfirmed, soon),
			req:        &models.CancelBookingRequest{Actor: adminActor},
			wantCancel: true,
			wantReason: domain.ReasonCancelledByAdmin,
		},
		{
			name:    "already cancelled is an idempotent no-op",
			booking: bookingOwnedBy(7, domain.StatusCancelled, farFuture),
			req:     &models.CancelBookingRequest{Actor: ownerActor(7)},
		},
		{
			name:    "completed cannot be cancelled",
			booking: bookingOwnedBy(7, domain.StatusCompleted, farFuture),
			req:     &models.CancelBookingRequest{Actor: adminActor},
			wantErr: ErrCannotCancel,
		},
		{
			name:    "no-show cannot be cancelled",
			booking: bookingOwnedBy(7, domain.StatusNoShow, farFuture),
			req:     &models.CancelBookingRequest{Actor: adminActor},
			wantErr: ErrCannotCancel,
		},
		{
			name:    "stranger cannot cancel",
			booking: bookingOwnedBy(7, domain.StatusPendingPayment, farFuture),
			req:     &models.CancelBookingRequest{Actor: ownerActor(8)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "customer cannot cancel a paid booking",
			booking: bookingOwnedBy(7, domain.StatusConfirmed, farFuture),
			req:     &models.CancelBookingRequest{Actor: ownerActor(7)},
			wantErr: ErrRefundRequired,
		},
		{
			name:    "customer cannot cancel inside the lead time",
			booking: bookingOwnedBy(7, domain.StatusPendingPayment, soon),
			req:     &models.CancelBookingRequest{Actor: ownerActor(7)},
			wantErr: ErrTooLateToCancel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepo{
				getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
					return tt.booking, nil
				},
			}
			svc := newTestService(repo)

			err := svc.Cancel(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.cancelledID)
				return
			}
			require.NoError(t, err)
			if tt.wantCancel {
				require.NotNil(t, repo.cancelledID)
				assert.Equal(t, tt.wantReason, repo.cancelReason)
			} else {
				assert.Nil(t, repo.cancelledID)
			}
		})
	}
}

func TestCancel_FreeTextReasonTooLong(t *testing.T) {
	booking := bookingOwnedBy(7, domain.StatusPendingPayment, testNow.Add(72*time.Hour))
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return booking, nil
		},
	}
	svc := newTestService(repo)

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  adminActor,
		Reason: ptr.Ptr(string(long)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.cancelledID)
}

func TestUpdateStatus(t *testing.T) {
	confirmed := bookingOwnedBy(7, domain.StatusConfirmed, testNow.Add(-time.Hour))

	t.Run("admin only", func(t *testing.T) {
		svc := newTestService(&mockBookingRepo{})
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  ownerActor(7),
			Status: "completed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(&mockBookingRepo{})
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  adminActor,
			Status: "archived",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("no-op transition rejected", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return confirmed, nil
			},
		}
		svc := newTestService(repo)
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  adminActor,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrSameStatus)
	})

	t.Run("cancelled booking never transitions", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return bookingOwnedBy(7, domain.StatusCancelled, testNow), nil
			},
		}
		svc := newTestService(repo)
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  adminActor,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrCannotTransition)
	})

	t.Run("completed stamps through UpdateStatus", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return confirmed, nil
			},
		}
		svc := newTestService(repo)
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  adminActor,
			Status: "completed",
		})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedID)
		assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
		assert.Nil(t, repo.cancelledID)
	})

	t.Run("cancelling routes through the cancel path", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return confirmed, nil
			},
		}
		svc := newTestService(repo)
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:  adminActor,
			Status: "cancelled",
		})
		require.NoError(t, err)
		require.NotNil(t, repo.cancelledID)
		assert.Equal(t, domain.ReasonCancelledByAdmin, repo.cancelReason)
		assert.Nil(t, repo.updatedID)
	})
}
