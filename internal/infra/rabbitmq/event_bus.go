package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/config"
	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.EventBus = (*EventBus)(nil)

// EventBus publishes domain events on a topic exchange, one routing key
// per event kind, so downstream consumers (billing, analytics) can bind
// selectively.
type EventBus struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zerolog.Logger
}

func NewEventBus(cfg config.RabbitConfig, logger *zerolog.Logger) (*EventBus, error) {
	l := logger.With().Str("component", "EventBus").Logger()

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	l.Info().Str("exchange", cfg.Exchange).Msg("rabbitmq event bus ready")
	return &EventBus{conn: conn, channel: channel, exchange: cfg.Exchange, log: &l}, nil
}

type eventMessage struct {
	Kind       string    `json:"kind"`
	JobID      string    `json:"job_id"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (b *EventBus) Publish(ctx context.Context, e adapter.Event) error {
	body, err := json.Marshal(eventMessage{
		Kind:       string(e.Kind),
		JobID:      e.JobID,
		UserID:     e.UserID,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = b.channel.PublishWithContext(
		ctx,
		b.exchange,     // exchange
		string(e.Kind), // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	b.log.Debug().Str("kind", string(e.Kind)).Str("job_id", e.JobID).Msg("event published")
	return nil
}

func (b *EventBus) Close() error {
	if b.channel != nil {
		_ = b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
