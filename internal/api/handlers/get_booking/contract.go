package get_booking

import (
	"context"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error)
	GetByCode(ctx context.Context, code string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
