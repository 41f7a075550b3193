package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// SequenceRepository hands out monotonic per-partition sequence numbers so
// consumers can deduplicate.
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// Publisher emits CartReadyForDelivery events over RabbitMQ. It implements
// fulfillment.CustomerNotifier: the notification service downstream owns the
// actual e-mail delivery.
type Publisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewPublisher(conn *amqp.Connection, sequences SequenceRepository) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue so publish never fails due to missing infra
	_, err = ch.QueueDeclare(CartReadyForDeliveryQueue, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", CartReadyForDeliveryQueue, err)
	}

	return &Publisher{ch: ch, sequences: sequences}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// SendEstimatedDeliveryNotification publishes the enveloped event for one
// cart. It does not wait for the notification service to pick it up.
func (p *Publisher) SendEstimatedDeliveryNotification(ctx context.Context, c *cart.Cart) error {
	seq, err := p.sequences.NextSequence(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	env := BuildCartReadyForDeliveryEnvelope(c, seq, EnvelopeMetadata{})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartReadyForDelivery: %w", err)
	}

	return p.publishJSON(ctx, CartReadyForDeliveryQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
