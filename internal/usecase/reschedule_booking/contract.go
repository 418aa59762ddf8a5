package reschedule_booking

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/catalogservice"
)

// BookingRepository is the persistence surface of rescheduling.
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	LockServiceDay(ctx context.Context, serviceID int64, date time.Time) error
	GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)
	Reschedule(ctx context.Context, booking *domain.Booking) error
}

// CatalogClient reads services and options when the reschedule changes them.
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetServiceOption(ctx context.Context, optionID int64) (*catalogservice.ServiceOption, error)
}

// TransactionManager runs the lock-check-move sequence atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
