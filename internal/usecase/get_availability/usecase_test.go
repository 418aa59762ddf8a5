package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	scheduleRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

type mockBookingRepo struct {
	getWithFilterFn func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
	if m.getWithFilterFn != nil {
		return m.getWithFilterFn(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

type mockScheduleRepo struct {
	getDayFn            func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error)
	getClosuresByDateFn func(ctx context.Context, date time.Time) ([]*domain.Closure, error)
}

func (m *mockScheduleRepo) GetDay(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
	return m.getDayFn(ctx, day)
}

func (m *mockScheduleRepo) GetClosuresByDate(ctx context.Context, date time.Time) ([]*domain.Closure, error) {
	if m.getClosuresByDateFn != nil {
		return m.getClosuresByDateFn(ctx, date)
	}
	return []*domain.Closure{}, nil
}

type mockCatalogClient struct {
	getServiceFn func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	return m.getServiceFn(ctx, serviceID)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// A Monday with the usual salon hours: 09:00-12:30 and 14:00-19:00.
var (
	testNow  = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
)

func openDay() *domain.ScheduleDay {
	return &domain.ScheduleDay{
		DayOfWeek:      time.Monday,
		MorningStart:   ptr.Ptr(types.TimeString("09:00")),
		MorningEnd:     ptr.Ptr(types.TimeString("12:30")),
		AfternoonStart: ptr.Ptr(types.TimeString("14:00")),
		AfternoonEnd:   ptr.Ptr(types.TimeString("19:00")),
	}
}

func newTestUseCase(
	bookingRepo BookingRepository,
	scheduleRepository ScheduleRepository,
	catalogClient CatalogClient,
) *UseCase {
	uc := NewUseCase(bookingRepo, scheduleRepository, catalogClient, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func hourService(id int64) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              id,
		Name:            "Haircut",
		DurationMinutes: 60,
		Active:          true,
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockScheduleRepo{}, &mockCatalogClient{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	yesterday := testNow.AddDate(0, 0, -1)
	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: yesterday})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return nil, catalogservice.ErrServiceNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, &mockScheduleRepo{}, catalog)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 42, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ScheduleNotConfigured(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return nil, scheduleRepo.ErrScheduleDayNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, schedule, catalog)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrScheduleNotConfigured)
}

func TestExecute_ClosedDay(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return &domain.ScheduleDay{DayOfWeek: day, Closed: true}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, schedule, catalog)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 60, resp.StepMinutes)
}

func TestExecute_FullDayClosure(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return openDay(), nil
		},
		getClosuresByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{Date: date, Reason: "ferragosto"}}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, schedule, catalog)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDay(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return openDay(), nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, schedule, catalog)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// 09:00-12:30 fits three hour slots, 14:00-19:00 fits five.
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, Slot{Start: "09:00", End: "10:00"}, resp.Slots[0])
	assert.Equal(t, Slot{Start: "11:00", End: "12:00"}, resp.Slots[2])
	assert.Equal(t, Slot{Start: "14:00", End: "15:00"}, resp.Slots[3])
	assert.Equal(t, Slot{Start: "18:00", End: "19:00"}, resp.Slots[7])
}

func TestExecute_PartialClosureShortensMorning(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return openDay(), nil
		},
		getClosuresByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{
				Date:      date,
				StartTime: ptr.Ptr(types.TimeString("12:00")),
				EndTime:   ptr.Ptr(types.TimeString("12:30")),
			}}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, schedule, catalog)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// The 12:00-12:30 tail never fit an hour slot, so the count is unchanged.
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_BookingSubtraction(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return openDay(), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		getWithFilterFn: func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
			assert.True(t, filter.OnlyBlocking)
			require.NotNil(t, filter.ServiceID)
			assert.Equal(t, int64(1), *filter.ServiceID)
			return []*domain.Booking{{
				ServiceID:       1,
				BookingDate:     testDate,
				StartTime:       "10:00",
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			}}, nil
		},
	}
	uc := newTestUseCase(bookingRepo, schedule, catalog)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Morning shrinks to 09:00-10:00 and 11:00-12:30: one slot each side.
	require.Len(t, resp.Slots, 7)
	assert.Equal(t, Slot{Start: "09:00", End: "10:00"}, resp.Slots[0])
	assert.Equal(t, Slot{Start: "11:00", End: "12:00"}, resp.Slots[1])
	assert.Equal(t, Slot{Start: "14:00", End: "15:00"}, resp.Slots[2])
}

func TestExecute_RepositoryFailure(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return hourService(serviceID), nil
		},
	}
	schedule := &mockScheduleRepo{
		getDayFn: func(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
			return openDay(), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		getWithFilterFn: func(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := newTestUseCase(bookingRepo, schedule, catalog)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
