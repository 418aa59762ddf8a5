package schedule

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

// ScheduleRepository is the persistence surface of the schedule service.
type ScheduleRepository interface {
	GetWeek(ctx context.Context) ([]*domain.ScheduleDay, error)
	UpsertDay(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error)
	GetClosuresFrom(ctx context.Context, from time.Time) ([]*domain.Closure, error)
	CreateClosure(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	DeleteClosure(ctx context.Context, id int64) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
