package get_availability

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
)

// BookingRepository reads the bookings blocking slots on a date.
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)
}

// ScheduleRepository reads business hours and closures.
type ScheduleRepository interface {
	GetDay(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error)
	GetClosuresByDate(ctx context.Context, date time.Time) ([]*domain.Closure, error)
}

// CatalogClient reads services from the catalog collaborator.
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs.
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
