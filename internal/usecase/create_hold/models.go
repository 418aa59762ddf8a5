package create_hold

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// Request creates a hold on a slot.
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OwnerUserID   *int64 // nil for guest checkouts

	ServiceID       int64
	ServiceOptionID *int64
	Date            time.Time
	StartTime       types.TimeString
	Notes           *string
}

// Response is the created hold.
type Response struct {
	ID              int64
	Code            string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
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
	HoldExpiresAt   time.Time
	CreatedAt       time.Time
}
