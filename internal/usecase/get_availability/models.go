package get_availability

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// Request asks for the bookable slots of a service on a date.
type Request struct {
	ServiceID int64
	Date      time.Time
}

// Response lists the bookable slots. StepMinutes equals the service
// duration: slots are fixed-size and non-overlapping.
type Response struct {
	ServiceID   int64
	Date        time.Time
	StepMinutes int
	Slots       []Slot
}

// Slot is one bookable interval.
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}
