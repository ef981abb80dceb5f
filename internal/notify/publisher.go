// Package notify moves mail requests through RabbitMQ: the API publishes them and
// the mail worker renders and sends them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker/v2"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[struct{}]
}

func NewPublisher(ch Channel, queue string, timeout time.Duration) *Publisher {
	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
		cb:      NewCircuitBreaker("mail-publisher"),
	}
}

// NewCircuitBreaker trips after at least three requests of which 60% failed.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker[struct{}] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	return gobreaker.NewCircuitBreaker[struct{}](st)
}

// DeclareQueue declares the durable mail queue on ch.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func (p *Publisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: marshal mail message: %w", err)
	}

	_, err = p.cb.Execute(func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		return struct{}{}, p.ch.PublishWithContext(
			ctx,
			"",
			p.queue,
			true,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
	})
	if err != nil {
		return fmt.Errorf("notify: publish %s mail: %w", msg.Type, err)
	}

	return nil
}
