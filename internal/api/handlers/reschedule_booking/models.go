package reschedule_booking

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	rescheduleBooking "github.com/roccadavide/beauty-room-sub000/internal/usecase/reschedule_booking"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// RescheduleRequest HTTP request model. Service, option and notes are
// optional; omitting them keeps the booked values.
type RescheduleRequest struct {
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	ServiceID       *int64  `json:"serviceId,omitempty"`
	ServiceOptionID *int64  `json:"serviceOptionId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	ServiceID       int64   `json:"serviceId"`
	ServiceOptionID *int64  `json:"serviceOptionId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *RescheduleRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) (*rescheduleBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:       bookingID,
		Actor:           actor,
		Date:            bookingDate,
		StartTime:       startTime,
		ServiceID:       r.ServiceID,
		ServiceOptionID: r.ServiceOptionID,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:              resp.ID,
		Code:            resp.Code,
		ServiceID:       resp.ServiceID,
		ServiceOptionID: resp.ServiceOptionID,
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
	}
}
