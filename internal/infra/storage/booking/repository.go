package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/pkg/dbmetrics"
	"github.com/roccadavide/beauty-room-sub000/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"code",
	"customer_name",
	"customer_email",
	"customer_phone",
	"owner_user_id",
	"service_id",
	"service_option_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"notes",
	"payment_session_id",
	"hold_expires_at",
	"cancellation_reason",
	"cancelled_at",
	"confirmed_at",
	"completed_at",
	"reminder_enqueued_at",
	"created_at",
	"updated_at",
}

// Repository persists bookings.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockServiceDay takes a transaction-scoped advisory lock keyed by
// (service, date). Concurrent hold creation for the same service and day
// blocks here until the competing transaction commits or rolls back, which
// makes the overlap-check-then-insert sequence atomic across callers.
// Must be called inside a transaction.
func (r *Repository) LockServiceDay(ctx context.Context, serviceID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Two int32 lock keys: the service id and the date as days since epoch.
	dayKey := int32(date.Unix() / 86400)
	if _, err := executor.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock($1::int, $2::int)",
		int32(serviceID), dayKey,
	); err != nil {
		return fmt.Errorf("%w: LockServiceDay - acquire advisory lock: %v", ErrExecQuery, err)
	}
	return nil
}

// Create inserts a new booking and fills in the generated fields.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"code",
			"customer_name",
			"customer_email",
			"customer_phone",
			"owner_user_id",
			"service_id",
			"service_option_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"service_price",
			"notes",
			"hold_expires_at",
		).
		Values(
			booking.Code,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.OwnerUserID,
			booking.ServiceID,
			booking.ServiceOptionID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.Notes,
			booking.HoldExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID fetches a booking by its primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByIDForUpdate fetches a booking by id and locks its row until the
// surrounding transaction ends. Used by the lifecycle transitions that race
// with the sweeper. Must be called inside a transaction.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan booking: %v", ErrScanRow, err)
	}
	return booking, nil
}

// GetByCode fetches a booking by its public reference code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, "GetByCode")
}

func (r *Repository) getOne(ctx context.Context, pred interface{}, method string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}
	return booking, nil
}

// GetByOwner returns the bookings owned by the given user, newest first.
// An optional status restricts the result.
func (r *Repository) GetByOwner(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter returns bookings matching the agenda filter.
//
// When called inside a transaction with a single-date filter, the selected
// rows are locked FOR UPDATE: this is the overlap-check path of hold
// creation and reschedule, where the rows read must not change until the
// insert commits.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AgendaFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	switch {
	case filter.OnlyBlocking:
		blocking := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blocking})
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case !filter.IncludeInactive:
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// AttachPaymentSession records the external payment session reference.
// Returns false without error if the booking already left pending_payment,
// which protects against late or duplicate payment-session callbacks.
func (r *Repository) AttachPaymentSession(ctx context.Context, id int64, sessionID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPendingPayment}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: AttachPaymentSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: AttachPaymentSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: AttachPaymentSession - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected > 0, nil
}

// Confirm moves a booking to confirmed, stamping confirmed_at and clearing
// the hold window.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Set("hold_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Confirm")
}

// Cancel moves a booking to cancelled with the given reason, stamping
// cancelled_at and clearing the hold window.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("hold_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateStatus sets an administrative status. Moving to completed stamps
// completed_at.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCompleted {
		updateBuilder = updateBuilder.Set("completed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Reschedule updates the slot and catalog fields of a booking.
func (r *Repository) Reschedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", booking.BookingDate).
		Set("start_time", booking.StartTime).
		Set("duration_minutes", booking.DurationMinutes).
		Set("service_id", booking.ServiceID).
		Set("service_option_id", booking.ServiceOptionID).
		Set("service_name", booking.ServiceName).
		Set("service_price", booking.ServicePrice).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reschedule")
}

// GetStaleHoldIDs returns the ids of pending holds whose window elapsed
// before now. Rows locked by a concurrent confirmation are skipped; the
// next sweep will no longer select them. Must be called inside the
// sweeper's transaction.
func (r *Repository) GetStaleHoldIDs(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Lt{"hold_expires_at": now}).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaleHoldIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaleHoldIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetStaleHoldIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaleHoldIDs - rows error: %v", ErrScanRow, err)
	}
	return ids, nil
}

// CancelExpiredHolds cancels the given holds with reason "expired". The
// status predicate re-checks pending_payment so a hold confirmed between
// selection and update is left untouched. Returns the number of bookings
// actually expired.
func (r *Repository) CancelExpiredHolds(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", domain.ReasonExpired).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("hold_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids, "status": domain.StatusPendingPayment}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// GetDueReminderCandidates returns confirmed bookings on the given dates
// that have not had a reminder enqueued yet. The caller narrows the result
// to the exact reminder window.
func (r *Repository) GetDueReminderCandidates(ctx context.Context, dates []time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"reminder_enqueued_at": nil}).
		Where(squirrel.Eq{"booking_date": dates}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminderCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminderCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkReminderEnqueued stamps reminder_enqueued_at so a booking is
// reminded at most once.
func (r *Repository) MarkReminderEnqueued(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_enqueued_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderEnqueued - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkReminderEnqueued")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.Code,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.OwnerUserID,
		&booking.ServiceID,
		&booking.ServiceOptionID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.Notes,
		&booking.PaymentSessionID,
		&booking.HoldExpiresAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
		&booking.ReminderEnqueuedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}
