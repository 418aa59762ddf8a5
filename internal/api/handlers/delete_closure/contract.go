package delete_closure

import "context"

type ScheduleService interface {
	DeleteClosure(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
