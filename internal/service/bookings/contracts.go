package bookings

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

// BookingRepository is the persistence surface of the bookings service.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetByOwner(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
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
