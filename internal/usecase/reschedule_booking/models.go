package reschedule_booking

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// Request moves an existing booking to a new slot, optionally changing the
// service, option and notes. Nil fields keep the booked value; changing the
// service drops the old option unless a new one is given.
type Request struct {
	BookingID int64
	Actor     domain.Actor

	Date      time.Time
	StartTime types.TimeString

	ServiceID       *int64
	ServiceOptionID *int64
	Notes           *string
}

// Response is the booking after the move.
type Response struct {
	ID              int64
	Code            string
	ServiceID       int64
	ServiceOptionID *int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	Notes           *string
}
