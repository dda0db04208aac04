// Package notify carries transition notifications from the lifecycle
// service to the email worker over RabbitMQ. Dispatch is best-effort:
// a broker outage is logged, never surfaced to the request that
// triggered the notification.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue the worker consumes.
const QueueName = "appointment.notifications"

// Event names, one per lifecycle transition.
const (
	EventAcknowledgement = "acknowledgement"
	EventBooking         = "booking"
	EventConfirmation    = "confirmation"
	EventReschedule      = "reschedule"
	EventCancellation    = "cancellation"
	EventRejection       = "rejection"
	EventFollowUp        = "follow_up"
)

// Payload keys.
const (
	KeyEmailTo    = "email_to"
	KeyName       = "name"
	KeyDate       = "date_str"
	KeyOldDate    = "old_date_str"
	KeyNewDate    = "new_date_str"
	KeyReason     = "reason"
)

// Event is a named notification with a flat payload.
type Event struct {
	Name    string            `json:"event"`
	Payload map[string]string `json:"payload"`
}

// Notifier accepts events for asynchronous delivery. Implementations
// must return immediately; delivery and retry are the channel's
// concern.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// AMQPNotifier publishes events to RabbitMQ. Events are handed to a
// buffered channel drained by a background goroutine so callers never
// block on broker I/O.
type AMQPNotifier struct {
	url    string
	events chan Event
	done   chan struct{}
}

// NewAMQPNotifier starts the publisher goroutine. The broker
// connection is established lazily on first publish.
func NewAMQPNotifier(url string) *AMQPNotifier {
	n := &AMQPNotifier{
		url:    url,
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	go n.publishLoop()
	return n
}

// Notify enqueues an event without blocking. When the buffer is full
// the event is dropped with a log line rather than stalling the
// request.
func (n *AMQPNotifier) Notify(ctx context.Context, event Event) {
	select {
	case n.events <- event:
	default:
		log.Printf("notify: buffer full, dropping %s event for %s", event.Name, event.Payload[KeyEmailTo])
	}
}

// Close stops the publisher after draining buffered events.
func (n *AMQPNotifier) Close() {
	close(n.events)
	<-n.done
}

func (n *AMQPNotifier) publishLoop() {
	defer close(n.done)

	var conn *amqp.Connection
	var ch *amqp.Channel

	teardown := func() {
		if ch != nil {
			_ = ch.Close()
			ch = nil
		}
		if conn != nil {
			_ = conn.Close()
			conn = nil
		}
	}
	defer teardown()

	ensure := func() error {
		if ch != nil {
			return nil
		}
		var err error
		conn, err = amqp.Dial(n.url)
		if err != nil {
			return err
		}
		ch, err = conn.Channel()
		if err != nil {
			teardown()
			return err
		}
		// Durable so messages survive broker restarts.
		if _, err = ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
			teardown()
			return err
		}
		return nil
	}

	for event := range n.events {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("notify: marshal %s event failed: %v", event.Name, err)
			continue
		}

		// One retry with a fresh connection, then drop. The consumer
		// side owns real retry policy.
		published := false
		for attempt := 0; attempt < 2; attempt++ {
			if err := ensure(); err != nil {
				log.Printf("notify: broker connect failed: %v", err)
				continue
			}
			err := ch.PublishWithContext(context.Background(), "", QueueName, false, false, amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			})
			if err == nil {
				published = true
				break
			}
			log.Printf("notify: publish %s event failed: %v", event.Name, err)
			teardown()
		}
		if !published {
			log.Printf("notify: dropping %s event for %s after failed publish", event.Name, event.Payload[KeyEmailTo])
		}
	}
}
