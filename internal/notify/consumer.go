package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"carebook/internal/model"
	"carebook/internal/repository"
)

// Consumer drains the notification queue, sends one email per event
// and records every delivery attempt. It reconnects with backoff and
// keeps running until the process exits.
type Consumer struct {
	url    string
	sender Sender
	logs   repository.NotificationLogRepository

	logCh chan model.NotificationLog
}

// NewConsumer builds a consumer. logs may be nil, in which case
// delivery auditing is skipped.
func NewConsumer(url string, sender Sender, logs repository.NotificationLogRepository) *Consumer {
	c := &Consumer{
		url:    url,
		sender: sender,
		logs:   logs,
		logCh:  make(chan model.NotificationLog, 100),
	}
	go c.logWorker(context.Background())
	return c
}

// Run connects to the broker and consumes until the context is
// cancelled. Connection failures back off exponentially up to 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("worker: broker dial failed: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			_ = conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("worker: consume loop ended: %v; reconnecting", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("worker: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(d.Body); err != nil {
				log.Printf("worker: handle message failed: %v", err)
				// Reject without requeue to avoid tight redelivery loops.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(body []byte) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	subject, emailBody, err := RenderEmail(event)
	if err != nil {
		return err
	}

	to := event.Payload[KeyEmailTo]
	if to == "" {
		return fmt.Errorf("%s event has no recipient", event.Name)
	}

	sendErr := c.sender.Send(to, subject, emailBody)
	c.audit(event, to, sendErr)
	if sendErr != nil {
		return fmt.Errorf("send %s email to %s: %w", event.Name, to, sendErr)
	}
	log.Printf("worker: sent %s email to %s", event.Name, to)
	return nil
}

// audit queues a delivery record without blocking the consume loop.
func (c *Consumer) audit(event Event, to string, sendErr error) {
	if c.logs == nil {
		return
	}
	entry := model.NotificationLog{
		Event:     event.Name,
		EmailTo:   to,
		Delivered: sendErr == nil,
	}
	if sendErr != nil {
		entry.ErrorMessage = sendErr.Error()
	}
	select {
	case c.logCh <- entry:
	default:
		// Channel full, write synchronously as fallback.
		_ = c.logs.Create(context.Background(), &entry)
	}
}

// logWorker flushes delivery records in batches.
func (c *Consumer) logWorker(ctx context.Context) {
	if c.logs == nil {
		return
	}
	batch := make([]model.NotificationLog, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-c.logCh:
			if !ok {
				if len(batch) > 0 {
					_ = c.logs.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= 10 {
				_ = c.logs.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = c.logs.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}
