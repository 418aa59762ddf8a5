package notifyqueue

import "errors"

var (
	// ErrNotConnected is returned when the broker connection is closed.
	ErrNotConnected = errors.New("notifyqueue: not connected to broker")

	// ErrPublish is returned when publishing a message fails.
	ErrPublish = errors.New("notifyqueue: failed to publish event")
)
