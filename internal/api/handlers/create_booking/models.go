package create_booking

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	createHold "github.com/roccadavide/beauty-room-sub000/internal/usecase/create_hold"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	ServiceID       int64   `json:"serviceId"`
	ServiceOptionID *int64  `json:"serviceOptionId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
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
	HoldExpiresAt   string  `json:"holdExpiresAt"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
// The authenticated user, if any, becomes the booking owner.
func (r *CreateBookingRequest) ToUseCaseRequest(ownerUserID *int64) (*createHold.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		OwnerUserID:     ownerUserID,
		ServiceID:       r.ServiceID,
		ServiceOptionID: r.ServiceOptionID,
		Date:            bookingDate,
		StartTime:       startTime,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createHold.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Code:            resp.Code,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
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
		HoldExpiresAt:   resp.HoldExpiresAt.Format(time.RFC3339),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
