package models

import (
	"errors"
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest cancels a booking on behalf of an actor. The free-text
// reason is kept for the audit log; the recorded cancellation reason is
// derived from who cancels.
type CancelBookingRequest struct {
	Actor  domain.Actor
	Reason *string
}

// UpdateStatusRequest moves a booking to an administrative status.
type UpdateStatusRequest struct {
	Actor  domain.Actor
	Status string
}

// GetOwnerBookingsRequest lists the bookings owned by a user.
type GetOwnerBookingsRequest struct {
	UserID int64
	Status *string
}

// GetAgendaRequest lists bookings over a date range for the admin agenda.
type GetAgendaRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	ServiceID       *int64
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter converts the request into a storage filter.
func (r *GetAgendaRequest) ToDomainFilter() (domain.AgendaFilter, error) {
	filter := domain.AgendaFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ServiceID:       r.ServiceID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the booking DTO handed to the API layer.
type BookingResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	OwnerUserID     *int64  `json:"ownerUserId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	ServiceOptionID *int64  `json:"serviceOptionId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`

	HoldExpiresAt      *time.Time `json:"holdExpiresAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *string    `json:"cancelledAt,omitempty"` // ISO 8601
	ConfirmedAt        *string    `json:"confirmedAt,omitempty"` // ISO 8601
	CompletedAt        *string    `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is a list of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Conversion helpers

// FromDomainBooking converts the domain model into the DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Code:               b.Code,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		OwnerUserID:        b.OwnerUserID,
		ServiceID:          b.ServiceID,
		ServiceOptionID:    b.ServiceOptionID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Notes:              b.Notes,
		HoldExpiresAt:      b.HoldExpiresAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}
	resp.CancelledAt = formatTimestamp(b.CancelledAt)
	resp.ConfirmedAt = formatTimestamp(b.ConfirmedAt)
	resp.CompletedAt = formatTimestamp(b.CompletedAt)

	return resp
}

// FromDomainBookingList converts a list of domain models into the DTO.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus converts a status string with validation.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
