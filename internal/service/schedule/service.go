package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	scheduleRepo "github.com/roccadavide/beauty-room-sub000/internal/infra/storage/schedule"
	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// Service manages the weekly business hours and the ad-hoc closures the
// availability calculation reads.
type Service struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a schedule service.
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSchedule returns the weekly schedule and the closures from today on.
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching weekly schedule")

	days, err := s.scheduleRepo.GetWeek(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	today := truncateToDay(s.timeProvider.Now())
	closures, err := s.scheduleRepo.GetClosuresFrom(ctx, today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to get closures: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(days, closures), nil
}

// UpsertDay replaces the business hours of one weekday.
func (s *Service) UpsertDay(ctx context.Context, req *models.UpsertDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpsertDay: updating day=%d, closed=%v", req.DayOfWeek, req.Closed)

	if err := validateUpsertDay(req); err != nil {
		s.logger.Warn("UpsertDay: validation failed: %v", err)
		return nil, err
	}

	entry, err := s.scheduleRepo.UpsertDay(ctx, req.ToDomainDay())
	if err != nil {
		s.logger.Error("UpsertDay: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDay: updated day=%d", req.DayOfWeek)
	resp := models.FromDomainDay(entry)
	return &resp, nil
}

// CreateClosure blocks a date, fully or partially.
func (s *Service) CreateClosure(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	s.logger.Info("CreateClosure: date=%s", req.Date)

	closure, err := s.buildClosure(req)
	if err != nil {
		s.logger.Warn("CreateClosure: validation failed: %v", err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateClosure(ctx, closure)
	if err != nil {
		s.logger.Error("CreateClosure: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: CreateClosure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClosure: created closure id=%d for %s", created.ID, req.Date)
	resp := models.FromDomainClosure(created)
	return &resp, nil
}

// DeleteClosure removes a closure.
func (s *Service) DeleteClosure(ctx context.Context, id int64) error {
	s.logger.Info("DeleteClosure: id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: closure id must be positive", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteClosure(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrClosureNotFound) {
			s.logger.Warn("DeleteClosure: closure id=%d not found", id)
			return ErrClosureNotFound
		}
		s.logger.Error("DeleteClosure: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteClosure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteClosure: deleted closure id=%d", id)
	return nil
}

func (s *Service) buildClosure(req *models.CreateClosureRequest) (*domain.Closure, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if date.Before(truncateToDay(s.timeProvider.Now())) {
		return nil, ErrDateInPast
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	closure := &domain.Closure{
		Date:   date,
		Reason: req.Reason,
	}

	// Either both window ends or neither: a half-specified window is
	// ambiguous between full-day and partial.
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: startTime and endTime must be given together", ErrInvalidInput)
	}
	if req.StartTime != nil {
		start, end, err := parseWindow(*req.StartTime, *req.EndTime)
		if err != nil {
			return nil, err
		}
		closure.StartTime = &start
		closure.EndTime = &end
	}

	return closure, nil
}

func validateUpsertDay(req *models.UpsertDayRequest) error {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}
	if req.Closed {
		if req.Morning != nil || req.Afternoon != nil {
			return fmt.Errorf("%w: a closed day cannot have open windows", ErrInvalidInput)
		}
		return nil
	}
	if req.Morning == nil && req.Afternoon == nil {
		return fmt.Errorf("%w: an open day needs at least one window", ErrInvalidInput)
	}

	var morningEnd, afternoonStart types.TimeString
	if req.Morning != nil {
		_, end, err := parseWindow(req.Morning.Start, req.Morning.End)
		if err != nil {
			return err
		}
		morningEnd = end
	}
	if req.Afternoon != nil {
		start, _, err := parseWindow(req.Afternoon.Start, req.Afternoon.End)
		if err != nil {
			return err
		}
		afternoonStart = start
	}
	if req.Morning != nil && req.Afternoon != nil && afternoonStart.IsBefore(morningEnd) {
		return fmt.Errorf("%w: afternoon window overlaps the morning window", ErrInvalidInput)
	}
	return nil
}

func parseWindow(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, startStr)
	}
	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, endStr)
	}
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: window start %s must be before end %s", ErrInvalidInput, startStr, endStr)
	}
	return start, end, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
