package domain

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	// StatusPendingPayment holds the slot while payment confirmation is
	// awaited. The hold lapses at HoldExpiresAt.
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusCompleted      BookingStatus = "completed"
	StatusNoShow         BookingStatus = "no_show"
)

// Cancellation reasons recorded on transitions into StatusCancelled.
const (
	ReasonExpired                   = "expired"
	ReasonExpiredBeforeConfirmation = "expired_before_confirmation"
	ReasonPaymentFailed             = "payment_failed"
	ReasonCancelledByCustomer       = "cancelled_by_customer"
	ReasonCancelledByAdmin          = "cancelled_by_admin"
)

// Booking is a reservation of a single slot for a salon service.
// A booking is created as a hold (pending_payment) and advances through the
// lifecycle driven by payment callbacks, the sweeper and admin actions.
type Booking struct {
	ID   int64
	Code string // public reference handed to the customer

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OwnerUserID   *int64 // nil for guest bookings

	ServiceID       int64
	ServiceOptionID *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized catalog data for history
	ServiceName  string
	ServicePrice float64

	Notes *string

	PaymentSessionID *string
	HoldExpiresAt    *time.Time

	CancellationReason *string
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time

	ReminderEnqueuedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the booked interval.
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Range returns the booked interval as a TimeRange.
func (b *Booking) Range() (TimeRange, error) {
	end, err := b.EndTime()
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: b.StartTime, End: end}, nil
}

// StartDateTime combines the booking date and start time into a single
// business-local instant.
func (b *Booking) StartDateTime() time.Time {
	minutes := b.StartTime.Minutes()
	return time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		minutes/60, minutes%60, 0, 0, b.BookingDate.Location(),
	)
}

// IsBlocking reports whether the booking occupies its slot for overlap
// checks and availability subtraction.
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// IsTerminal reports whether the booking reached a final state.
// No transition ever leaves a terminal state.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// HoldLapsed reports whether a pending hold has outlived its window.
func (b *Booking) HoldLapsed(now time.Time) bool {
	return b.Status == StatusPendingPayment && b.HoldExpiresAt != nil && b.HoldExpiresAt.Before(now)
}

// IsOwnedBy reports whether userID owns this booking. Guest bookings
// (no owner) are never owned by an authenticated user.
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.OwnerUserID != nil && *b.OwnerUserID == userID
}

// AgendaFilter selects bookings for the admin agenda and availability reads.
type AgendaFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	ServiceID       *int64
	Status          *BookingStatus
	OnlyBlocking    bool // restrict to the blocking status set
	IncludeInactive bool // include cancelled and no-show bookings
}

// Actor identifies who performs a mutating operation. Authorization is
// attribute-based: either the admin capability or ownership of the booking.
type Actor struct {
	UserID  *int64
	IsAdmin bool
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}
