package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	scheduleRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
	"github.com/roccadavide/beauty-room-sub000/pkg/ptr"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

type mockScheduleRepo struct {
	getWeekFn         func(ctx context.Context) ([]*domain.ScheduleDay, error)
	getClosuresFromFn func(ctx context.Context, from time.Time) ([]*domain.Closure, error)
	upsertDayFn       func(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error)
	createClosureFn   func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	deleteClosureFn   func(ctx context.Context, id int64) error
}

func (m *mockScheduleRepo) GetWeek(ctx context.Context) ([]*domain.ScheduleDay, error) {
	return m.getWeekFn(ctx)
}

func (m *mockScheduleRepo) GetClosuresFrom(ctx context.Context, from time.Time) ([]*domain.Closure, error) {
	return m.getClosuresFromFn(ctx, from)
}

func (m *mockScheduleRepo) UpsertDay(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error) {
	return m.upsertDayFn(ctx, entry)
}

func (m *mockScheduleRepo) CreateClosure(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	return m.createClosureFn(ctx, closure)
}

func (m *mockScheduleRepo) DeleteClosure(ctx context.Context, id int64) error {
	return m.deleteClosureFn(ctx, id)
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

func newTestService(repo *mockScheduleRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func TestGetSchedule(t *testing.T) {
	repo := &mockScheduleRepo{
		getWeekFn: func(ctx context.Context) ([]*domain.ScheduleDay, error) {
			return []*domain.ScheduleDay{
				{DayOfWeek: time.Sunday, Closed: true},
				{
					DayOfWeek:    time.Monday,
					MorningStart: ptr.Ptr(types.TimeString("09:00")),
					MorningEnd:   ptr.Ptr(types.TimeString("12:30")),
				},
			}, nil
		},
		getClosuresFromFn: func(ctx context.Context, from time.Time) ([]*domain.Closure, error) {
			// Only closures from today on are surfaced.
			assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), from)
			return []*domain.Closure{
				{ID: 3, Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Reason: "training day"},
			}, nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetSchedule(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	assert.True(t, resp.Days[0].Closed)
	require.NotNil(t, resp.Days[1].Morning)
	assert.Equal(t, "09:00", resp.Days[1].Morning.Start)
	assert.Nil(t, resp.Days[1].Afternoon)

	require.Len(t, resp.Closures, 1)
	assert.Equal(t, "2026-09-10", resp.Closures[0].Date)
	assert.Nil(t, resp.Closures[0].StartTime)
}

func TestUpsertDay_Validation(t *testing.T) {
	svc := newTestService(&mockScheduleRepo{})

	tests := []struct {
		name string
		req  *models.UpsertDayRequest
	}{
		{
			name: "day out of range",
			req:  &models.UpsertDayRequest{DayOfWeek: 7},
		},
		{
			name: "closed day with a window",
			req: &models.UpsertDayRequest{
				DayOfWeek: 1,
				Closed:    true,
				Morning:   &models.Window{Start: "09:00", End: "12:00"},
			},
		},
		{
			name: "open day without windows",
			req:  &models.UpsertDayRequest{DayOfWeek: 1},
		},
		{
			name: "window start after end",
			req: &models.UpsertDayRequest{
				DayOfWeek: 1,
				Morning:   &models.Window{Start: "12:00", End: "09:00"},
			},
		},
		{
			name: "malformed window time",
			req: &models.UpsertDayRequest{
				DayOfWeek: 1,
				Morning:   &models.Window{Start: "9am", End: "12:00"},
			},
		},
		{
			name: "afternoon overlaps morning",
			req: &models.UpsertDayRequest{
				DayOfWeek: 1,
				Morning:   &models.Window{Start: "09:00", End: "13:00"},
				Afternoon: &models.Window{Start: "12:00", End: "18:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertDay(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsertDay(t *testing.T) {
	var stored *domain.ScheduleDay
	repo := &mockScheduleRepo{
		upsertDayFn: func(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error) {
			stored = entry
			entry.ID = 2
			return entry, nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.UpsertDay(context.Background(), &models.UpsertDayRequest{
		DayOfWeek: 1,
		Morning:   &models.Window{Start: "09:00", End: "12:30"},
		Afternoon: &models.Window{Start: "14:00", End: "19:00"},
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, time.Monday, stored.DayOfWeek)
	require.NotNil(t, stored.AfternoonStart)
	assert.Equal(t, types.TimeString("14:00"), *stored.AfternoonStart)

	assert.Equal(t, 1, resp.DayOfWeek)
	require.NotNil(t, resp.Morning)
	assert.Equal(t, "12:30", resp.Morning.End)
}

func TestUpsertDay_ClosedDay(t *testing.T) {
	repo := &mockScheduleRepo{
		upsertDayFn: func(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error) {
			return entry, nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.UpsertDay(context.Background(), &models.UpsertDayRequest{
		DayOfWeek: 0,
		Closed:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.Nil(t, resp.Morning)
}

func TestCreateClosure(t *testing.T) {
	t.Run("full day", func(t *testing.T) {
		repo := &mockScheduleRepo{
			createClosureFn: func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
				closure.ID = 9
				return closure, nil
			},
		}
		svc := newTestService(repo)

		resp, err := svc.CreateClosure(context.Background(), &models.CreateClosureRequest{
			Date:   "2026-09-10",
			Reason: "staff training",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), resp.ID)
		assert.Nil(t, resp.StartTime)
	})

	t.Run("partial window", func(t *testing.T) {
		var stored *domain.Closure
		repo := &mockScheduleRepo{
			createClosureFn: func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
				stored = closure
				return closure, nil
			},
		}
		svc := newTestService(repo)

		_, err := svc.CreateClosure(context.Background(), &models.CreateClosureRequest{
			Date:      "2026-09-10",
			StartTime: ptr.Ptr("12:00"),
			EndTime:   ptr.Ptr("15:00"),
		})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.False(t, stored.IsFullDay())
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(&mockScheduleRepo{})

		_, err := svc.CreateClosure(context.Background(), &models.CreateClosureRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateClosure(context.Background(), &models.CreateClosureRequest{Date: "10/09/2026"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateClosure(context.Background(), &models.CreateClosureRequest{Date: "2026-08-01"})
		assert.ErrorIs(t, err, ErrDateInPast)

		_, err = svc.CreateClosure(context.Background(), &models.CreateClosureRequest{
			Date:      "2026-09-10",
			StartTime: ptr.Ptr("12:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateClosure(context.Background(), &models.CreateClosureRequest{
			Date:      "2026-09-10",
			StartTime: ptr.Ptr("15:00"),
			EndTime:   ptr.Ptr("12:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteClosure(t *testing.T) {
	repo := &mockScheduleRepo{
		deleteClosureFn: func(ctx context.Context, id int64) error {
			if id == 9 {
				return nil
			}
			return scheduleRepo.ErrClosureNotFound
		},
	}
	svc := newTestService(repo)

	assert.NoError(t, svc.DeleteClosure(context.Background(), 9))
	assert.ErrorIs(t, svc.DeleteClosure(context.Background(), 10), ErrClosureNotFound)
	assert.ErrorIs(t, svc.DeleteClosure(context.Background(), 0), ErrInvalidInput)
}
