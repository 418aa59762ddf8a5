package notifyqueue

import "time"

// EventType identifies a notification event.
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingReminder  EventType = "BOOKING_REMINDER"
)

// Event is the message enqueued for the notification worker. Delivery is
// at-least-once; the consumer deduplicates on (type, booking id).
type Event struct {
	Type       EventType `json:"type"`
	BookingID  int64     `json:"bookingId"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurredAt"`
}
