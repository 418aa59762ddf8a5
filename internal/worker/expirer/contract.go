package expirer

import (
	"context"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/notifyqueue"
)

// BookingRepository is the persistence surface of the sweeper.
type BookingRepository interface {
	GetStaleHoldIDs(ctx context.Context, now time.Time) ([]int64, error)
	CancelExpiredHolds(ctx context.Context, ids []int64) (int64, error)
	GetDueReminderCandidates(ctx context.Context, dates []time.Time) ([]*domain.Booking, error)
	MarkReminderEnqueued(ctx context.Context, id int64) error
}

// NotifyPublisher enqueues reminder events.
type NotifyPublisher interface {
	Publish(ctx context.Context, event notifyqueue.Event) error
}

// TransactionManager runs each sweep in one transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the sweeper needs.
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
