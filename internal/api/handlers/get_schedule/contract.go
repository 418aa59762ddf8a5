package get_schedule

import (
	"context"

	"github.com/roccadavide/beauty-room-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
