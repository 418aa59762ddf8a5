// Package notifyqueue publishes booking notification events to RabbitMQ.
// The engine treats the queue as a fire-and-forget sink: publish failures
// are reported to the caller, logged, and never interrupt the booking flow.
package notifyqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/roccadavide/beauty-room-sub000/pkg/metrics"
)

// Logger is the logging surface the publisher needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher is a long-lived AMQP publisher bound to a single durable queue.
type Publisher struct {
	url     string
	queue   string
	log     Logger
	metrics *metrics.Metrics // optional

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the durable queue.
func NewPublisher(url, queue string, m *metrics.Metrics, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:     url,
		queue:   queue,
		log:     log,
		metrics: m,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrNotConnected, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrNotConnected, err)
	}

	// Durable queue so events survive broker restarts; the declare is
	// idempotent and shared with the notification worker.
	if _, err := channel.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: declare queue %q: %v", ErrNotConnected, p.queue, err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// Publish enqueues an event as a persistent JSON message. The connection is
// re-established once on failure before giving up.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.publishLocked(ctx, msg); err != nil {
		p.log.Warn("notifyqueue: publish failed, reconnecting: %v", err)
		if rcErr := p.connect(); rcErr != nil {
			return rcErr
		}
		if err := p.publishLocked(ctx, msg); err != nil {
			return err
		}
	}

	if p.metrics != nil {
		p.metrics.NotificationsEnqueuedTotal.WithLabelValues(string(event.Type)).Inc()
	}
	p.log.Info("notifyqueue: enqueued %s for booking id=%d", event.Type, event.BookingID)
	return nil
}

func (p *Publisher) publishLocked(ctx context.Context, msg amqp.Publishing) error {
	if p.channel == nil {
		return ErrNotConnected
	}
	if err := p.channel.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// Noop is a publisher that drops all events. Used when notifications are
// disabled in the configuration.
type Noop struct{}

// Publish implements the publisher contract and does nothing.
func (Noop) Publish(ctx context.Context, event Event) error { return nil }
