package eventpublisher

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/infrastructure/retry"
)

const amqpPublishTimeout = 5 * time.Second

// amqpChannel is the part of *amqp091.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher sends events to a durable direct exchange, routed by event type.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  amqpChannel
	retrier  *retry.Retrier
	logger   zerolog.Logger
	exchange string
	ledgerID string
}

// NewAMQPPublisher dials url and declares exchange.
func NewAMQPPublisher(url, exchange, ledgerID string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newAMQPPublisher(channel, exchange, ledgerID, logger)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(channel amqpChannel, exchange, ledgerID string, logger zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		channel:  channel,
		retrier:  retry.New(retry.WithLogger(logger)),
		logger:   logger,
		exchange: exchange,
		ledgerID: ledgerID,
	}
}

// Publish sends event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := Encode(p.ledgerID, event)
	if err != nil {
		return err
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		AppId:        "splitnest",
		Body:         body,
	}

	err = p.retrier.Retry(ctx, "amqp_publish", func() error {
		pubCtx, cancel := context.WithTimeout(ctx, amqpPublishTimeout)
		defer cancel()
		return p.channel.PublishWithContext(pubCtx, p.exchange, event.Type, false, false, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug().
		Str("event_type", event.Type).
		Str("exchange", p.exchange).
		Msg("event published to AMQP")

	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
