package confirm_payment

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/notifyqueue"
)

// BookingRepository is the persistence surface of payment confirmation.
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	AttachPaymentSession(ctx context.Context, id int64, sessionID string) (bool, error)
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// NotifyPublisher enqueues notification events after a confirmation.
type NotifyPublisher interface {
	Publish(ctx context.Context, event notifyqueue.Event) error
}

// TransactionManager runs the lock-then-transition sequence atomically.
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
