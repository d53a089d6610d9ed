package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

const queueName = "orders.paid"

// Publisher pushes paid orders onto a kitchen queue. A nil Publisher
// is a valid no-op, so deployments without a broker just skip it.
type Publisher struct {
	log  *slog.Logger
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(log *slog.Logger, amqpURL string) (*Publisher, error) {
	const op = "events.NewPublisher"

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{log: log, conn: conn, ch: ch}, nil
}

func (p *Publisher) PublishOrderPaid(order models.Order, payment models.Payment) error {
	const op = "events.PublishOrderPaid"

	if p == nil {
		return nil
	}
	log := p.log.With("op", op)

	body, err := json.Marshal(struct {
		Order   models.Order   `json:"order"`
		Payment models.Payment `json:"payment"`
	}{order, payment})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		log.Error("Failed to publish paid order", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("Published paid order", "order_id", order.Id)
	return nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.ch.Close()
	p.conn.Close()
}
