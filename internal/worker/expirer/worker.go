// Package expirer runs the periodic background passes of the booking
// engine: expiring stale payment holds and enqueuing visit reminders.
//
// Hold expiry is data-driven: a hold carries its own deadline and the
// sweeper is the only mechanism enforcing it, so the sweep period bounds
// how long an abandoned hold can keep blocking a slot. Errors never leave
// the worker; a failed sweep is logged and the rows wait for the next tick.
package expirer

import (
	"context"
	"sync"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/integrations/notifyqueue"
	"github.com/roccadavide/beauty-room-sub000/pkg/metrics"
)

// Worker is the hold-expiry sweeper and reminder scheduler.
type Worker struct {
	bookingRepo  BookingRepository
	notifier     NotifyPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	metrics      *metrics.Metrics // optional

	sweepInterval time.Duration
	reminderLead  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates the sweeper. sweepIntervalSeconds must be shorter than the
// hold window; the config layer enforces that. reminderLeadHours of zero
// disables the reminder pass.
func New(
	bookingRepo BookingRepository,
	notifier NotifyPublisher,
	txManager TransactionManager,
	sweepIntervalSeconds int,
	reminderLeadHours int,
	m *metrics.Metrics,
	logger Logger,
) *Worker {
	if sweepIntervalSeconds <= 0 {
		sweepIntervalSeconds = domain.DefaultSweepIntervalSeconds
	}
	return &Worker{
		bookingRepo:   bookingRepo,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       m,
		sweepInterval: time.Duration(sweepIntervalSeconds) * time.Second,
		reminderLead:  time.Duration(reminderLeadHours) * time.Hour,
	}
}

// Start launches the ticker loop. The first sweep runs immediately so a
// restart does not leave stale holds waiting a full period.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.logger.Info("expirer: started, sweep interval %s", w.sweepInterval)

		ticker := time.NewTicker(w.sweepInterval)
		defer ticker.Stop()

		w.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("expirer: stopped")
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) runOnce(ctx context.Context) {
	w.sweepExpiredHolds(ctx)
	if w.reminderLead > 0 {
		w.enqueueDueReminders(ctx)
	}
}

// sweepExpiredHolds expires pending holds whose window elapsed. Selection
// and update run in one transaction; holds locked by a concurrent
// confirmation are skipped and the status predicate on the update protects
// the ones that were confirmed between selection and update.
func (w *Worker) sweepExpiredHolds(ctx context.Context) {
	if w.metrics != nil {
		w.metrics.SweeperRunsTotal.Inc()
	}

	now := w.timeProvider.Now()
	var expired int64

	err := w.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, err := w.bookingRepo.GetStaleHoldIDs(txCtx, now)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		expired, err = w.bookingRepo.CancelExpiredHolds(txCtx, ids)
		return err
	})
	if err != nil {
		w.logger.Error("expirer: sweep failed: %v", err)
		return
	}

	if expired > 0 {
		w.logger.Info("expirer: expired %d stale holds", expired)
		if w.metrics != nil {
			w.metrics.SweeperExpiredTotal.Add(float64(expired))
		}
	}
}

// enqueueDueReminders publishes a reminder for confirmed bookings starting
// within the reminder lead. Each booking is marked before the event goes
// out, so a publish failure costs a reminder rather than duplicating one.
func (w *Worker) enqueueDueReminders(ctx context.Context) {
	now := w.timeProvider.Now()

	candidates, err := w.bookingRepo.GetDueReminderCandidates(ctx, reminderDates(now, w.reminderLead))
	if err != nil {
		w.logger.Error("expirer: failed to get reminder candidates: %v", err)
		return
	}

	for _, b := range candidates {
		start := b.StartDateTime()
		if start.Before(now) || start.Sub(now) > w.reminderLead {
			continue
		}

		if err := w.bookingRepo.MarkReminderEnqueued(ctx, b.ID); err != nil {
			w.logger.Error("expirer: failed to mark reminder for booking id=%d: %v", b.ID, err)
			continue
		}

		if err := w.notifier.Publish(ctx, notifyqueue.Event{
			Type:       notifyqueue.EventBookingReminder,
			BookingID:  b.ID,
			Code:       b.Code,
			OccurredAt: now,
		}); err != nil {
			w.logger.Error("expirer: failed to enqueue reminder for booking id=%d: %v", b.ID, err)
		}
	}
}

// reminderDates lists the booking dates that can fall inside the lead
// window ending at now+lead.
func reminderDates(now time.Time, lead time.Duration) []time.Time {
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := now.Add(lead)

	dates := []time.Time{first}
	for d := first.AddDate(0, 0, 1); !d.After(horizon); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
