package schedule

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

var scheduleColumns = []string{
	"id",
	"day_of_week",
	"closed",
	"morning_start",
	"morning_end",
	"afternoon_start",
	"afternoon_end",
	"created_at",
	"updated_at",
}

var closureColumns = []string{
	"id",
	"closure_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
	"updated_at",
}

// Repository persists the weekly schedule and ad-hoc closures.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a schedule repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDay returns the schedule entry for the given weekday.
func (r *Repository) GetDay(ctx context.Context, day time.Weekday) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	entry, err := scanScheduleDay(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan schedule day: %v", ErrScanRow, err)
	}
	return entry, nil
}

// GetWeek returns all schedule entries ordered by weekday.
func (r *Repository) GetWeek(ctx context.Context) ([]*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ScheduleDay, 0, 7)
	for rows.Next() {
		entry, err := scanScheduleDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}
	return entries, nil
}

// UpsertDay inserts or replaces the schedule entry for a weekday.
// The day_of_week unique constraint guarantees at most one entry per day.
func (r *Repository) UpsertDay(ctx context.Context, entry *domain.ScheduleDay) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule").
		Columns(
			"day_of_week",
			"closed",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
		).
		Values(
			int(entry.DayOfWeek),
			entry.Closed,
			entry.MorningStart,
			entry.MorningEnd,
			entry.AfternoonStart,
			entry.AfternoonEnd,
		).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			closed = EXCLUDED.closed,
			morning_start = EXCLUDED.morning_start,
			morning_end = EXCLUDED.morning_end,
			afternoon_start = EXCLUDED.afternoon_start,
			afternoon_end = EXCLUDED.afternoon_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDay - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDay - execute upsert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time
	return entry, nil
}

// GetClosuresByDate returns the closures affecting a single date.
func (r *Repository) GetClosuresByDate(ctx context.Context, date time.Time) ([]*domain.Closure, error) {
	return r.getClosures(ctx, squirrel.Eq{"closure_date": date}, "GetClosuresByDate")
}

// GetClosuresFrom returns closures on or after the given date, soonest first.
func (r *Repository) GetClosuresFrom(ctx context.Context, from time.Time) ([]*domain.Closure, error) {
	return r.getClosures(ctx, squirrel.GtOrEq{"closure_date": from}, "GetClosuresFrom")
}

func (r *Repository) getClosures(ctx context.Context, pred interface{}, method string) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closureColumns...).
		From("closures").
		Where(pred).
		OrderBy("closure_date ASC, start_time ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	closures := make([]*domain.Closure, 0)
	for rows.Next() {
		closure, err := scanClosure(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		closures = append(closures, closure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}
	return closures, nil
}

// CreateClosure inserts a closure.
func (r *Repository) CreateClosure(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closures").
		Columns(
			"closure_date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			closure.Date,
			closure.StartTime,
			closure.EndTime,
			closure.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClosure - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closure.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClosure - execute insert: %v", ErrExecQuery, err)
	}

	closure.CreatedAt = createdAt.Time
	closure.UpdatedAt = updatedAt.Time
	return closure, nil
}

// DeleteClosure removes a closure.
func (r *Repository) DeleteClosure(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closures").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteClosure - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteClosure - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteClosure - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClosureNotFound
	}
	return nil
}

func scanScheduleDay(scan func(dest ...interface{}) error) (*domain.ScheduleDay, error) {
	var entry domain.ScheduleDay
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&entry.ID,
		&dayOfWeek,
		&entry.Closed,
		&entry.MorningStart,
		&entry.MorningEnd,
		&entry.AfternoonStart,
		&entry.AfternoonEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.DayOfWeek = time.Weekday(dayOfWeek)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time
	return &entry, nil
}

func scanClosure(scan func(dest ...interface{}) error) (*domain.Closure, error) {
	var closure domain.Closure
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&closure.ID,
		&closure.Date,
		&closure.StartTime,
		&closure.EndTime,
		&closure.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	closure.CreatedAt = createdAt.Time
	closure.UpdatedAt = updatedAt.Time
	return &closure, nil
}
