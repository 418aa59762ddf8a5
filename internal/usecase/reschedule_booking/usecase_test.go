package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

type mockBookingRepo struct {
	getByIDForUpdateFn func(ctx context.Context, id int64) (*domain.Booking, error)
	getWithFilterFn    func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)

	rescheduled *domain.Booking
}

func (m *mockBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDForUpdateFn(ctx, id)
}

func (m *mockBookingRepo) LockServiceDay(ctx context.Context, serviceID int64, date time.Time) error {
	return nil
}

func (m *mockBookingRepo) GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
	if m.getWithFilterFn != nil {
		return m.getWithFilterFn(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) Reschedule(ctx context.Context, booking *domain.Booking) error {
	m.rescheduled = booking
	return nil
}

type mockCatalogClient struct {
	getServiceFn func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	getOptionFn  func(ctx context.Context, optionID int64) (*catalogservice.ServiceOption, error)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	return m.getServiceFn(ctx, serviceID)
}

func (m *mockCatalogClient) GetServiceOption(ctx context.Context, optionID int64) (*catalogservice.ServiceOption, error) {
	return m.getOptionFn(ctx, optionID)
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	oldDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *mockBookingRepo, catalog *mockCatalogClient) *UseCase {
	uc := NewUseCase(repo, catalog, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func ownedHold(id, ownerID int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Code:            "ref-abc",
		OwnerUserID:     &ownerID,
		ServiceID:       1,
		BookingDate:     oldDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPendingPayment,
		ServiceName:     "Haircut",
		ServicePrice:    35.0,
	}
}

func ownerActor(userID int64) domain.Actor {
	return domain.Actor{UserID: &userID}
}

var adminActor = domain.Actor{IsAdmin: true}

func moveRequest(actor domain.Actor) *Request {
	return &Request{
		BookingID: 1,
		Actor:     actor,
		Date:      newDate,
		StartTime: "15:00",
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockCatalogClient{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "non-positive booking id", mutate: func(r *Request) { r.BookingID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing start", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start", mutate: func(r *Request) { r.StartTime = "3pm" }},
		{name: "non-positive service", mutate: func(r *Request) { r.ServiceID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := moveRequest(adminActor)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StartInPast(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockCatalogClient{})

	req := moveRequest(adminActor)
	req.Date = testNow
	req.StartTime = "09:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartTimeInPast)
}

func TestExecute_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		actor   domain.Actor
		wantErr error
	}{
		{
			name:    "owner moves own pending hold",
			booking: ownedHold(1, 7),
			actor:   ownerActor(7),
		},
		{
			name:    "admin moves pending hold",
			booking: ownedHold(1, 7),
			actor:   adminActor,
		},
		{
			name:    "stranger cannot move a hold",
			booking: ownedHold(1, 7),
			actor:   ownerActor(8),
			wantErr: ErrForbidden,
		},
		{
			name:    "guest hold has no owner",
			booking: &domain.Booking{ID: 1, ServiceID: 1, BookingDate: oldDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusPendingPayment},
			actor:   ownerActor(7),
			wantErr: ErrForbidden,
		},
		{
			name: "owner cannot move a confirmed booking",
			booking: func() *domain.Booking {
				b := ownedHold(1, 7)
				b.Status = domain.StatusConfirmed
				return b
			}(),
			actor:   ownerActor(7),
			wantErr: ErrForbidden,
		},
		{
			name: "admin moves a confirmed booking",
			booking: func() *domain.Booking {
				b := ownedHold(1, 7)
				b.Status = domain.StatusConfirmed
				return b
			}(),
			actor: adminActor,
		},
		{
			name: "cancelled booking never moves",
			booking: func() *domain.Booking {
				b := ownedHold(1, 7)
				b.Status = domain.StatusCancelled
				return b
			}(),
			actor:   adminActor,
			wantErr: ErrNotReschedulable,
		},
		{
			name: "completed booking never moves",
			booking: func() *domain.Booking {
				b := ownedHold(1, 7)
				b.Status = domain.StatusCompleted
				return b
			}(),
			actor:   adminActor,
			wantErr: ErrNotReschedulable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepo{
				getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
					return tt.booking, nil
				},
			}
			uc := newTestUseCase(repo, &mockCatalogClient{})

			_, err := uc.Execute(context.Background(), moveRequest(tt.actor))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.rescheduled)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, repo.rescheduled)
		})
	}
}

func TestExecute_OwnRowDoesNotConflict(t *testing.T) {
	hold := ownedHold(1, 7)
	repo := &mockBookingRepo{
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return hold, nil
		},
		getWithFilterFn: func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
			// The overlap read returns the booking being moved itself.
			return []*domain.Booking{hold}, nil
		},
	}
	uc := newTestUseCase(repo, &mockCatalogClient{})

	req := moveRequest(ownerActor(7))
	req.Date = oldDate
	req.StartTime = "10:30" // overlaps its own current 10:00-11:00 slot

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return ownedHold(1, 7), nil
		},
		getWithFilterFn: func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{{
				ID:              2,
				ServiceID:       1,
				BookingDate:     newDate,
				StartTime:       "15:30",
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			}}, nil
		},
	}
	uc := newTestUseCase(repo, &mockCatalogClient{})

	_, err := uc.Execute(context.Background(), moveRequest(ownerActor(7)))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ServiceChange(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{
				ID:              serviceID,
				Name:            "Colour",
				DurationMinutes: 90,
				Price:           ptr.Ptr(80.0),
				Active:          true,
			}, nil
		},
	}
	hold := ownedHold(1, 7)
	hold.ServiceOptionID = ptr.Ptr(int64(5))
	repo := &mockBookingRepo{
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return hold, nil
		},
	}
	uc := newTestUseCase(repo, catalog)

	req := moveRequest(ownerActor(7))
	req.ServiceID = ptr.Ptr(int64(2))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ServiceID)
	assert.Equal(t, "Colour", resp.ServiceName)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 80.0, resp.ServicePrice)
	assert.Equal(t, types.TimeString("16:30"), resp.EndTime)
	// Changing the service drops the old option.
	assert.Nil(t, resp.ServiceOptionID)
}

func TestExecute_OptionOfAnotherService(t *testing.T) {
	catalog := &mockCatalogClient{
		getOptionFn: func(ctx context.Context, optionID int64) (*catalogservice.ServiceOption, error) {
			return &catalogservice.ServiceOption{
				ID:        optionID,
				ServiceID: 99,
				Active:    true,
			}, nil
		},
	}
	repo := &mockBookingRepo{
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return ownedHold(1, 7), nil
		},
	}
	uc := newTestUseCase(repo, catalog)

	req := moveRequest(ownerActor(7))
	req.ServiceOptionID = ptr.Ptr(int64(3))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOptionMismatch)
}

func TestExecute_NotesUpdate(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return ownedHold(1, 7), nil
		},
	}
	uc := newTestUseCase(repo, &mockCatalogClient{})

	req := moveRequest(ownerActor(7))
	req.Notes = ptr.Ptr("please use the hypoallergenic dye")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "please use the hypoallergenic dye", *resp.Notes)
}
