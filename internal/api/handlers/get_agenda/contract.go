package get_agenda

import (
	"context"

	"github.com/roccadavide/beauty-room-sub000/internal/service/bookings/models"
)

type BookingsService interface {
	GetAgenda(ctx context.Context, req *models.GetAgendaRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
