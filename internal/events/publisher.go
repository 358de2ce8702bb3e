package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
)

// Publisher announces subscription lifecycle events on a topic exchange,
// routed by event type (subscription.created, subscription.deleted).
type Publisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) *Publisher {
	if exchange == "" {
		exchange = "push.subscriptions"
	}
	return &Publisher{
		conn:         conn,
		exchangeName: exchange,
		logger:       logger,
	}
}

// Publish sends event as JSON. The channel is opened lazily and reopened
// after a failure.
func (p *Publisher) Publish(ctx context.Context, event models.SubscriptionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.Publish(
		p.exchangeName,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		_ = ch.Close()
		p.ch = nil
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	p.logger.Debug("subscription event published",
		slog.String("type", event.Type),
		slog.String("id", event.ID))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := p.setupExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("exchange setup failed: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) setupExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		p.exchangeName,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
