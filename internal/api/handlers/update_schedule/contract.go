package update_schedule

import (
	"context"

	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertDay(ctx context.Context, req *models.UpsertDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
