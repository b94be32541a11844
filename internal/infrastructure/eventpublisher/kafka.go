package eventpublisher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/infrastructure/retry"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to one topic keyed by ledger ID, so every
// event of a ledger lands on the same partition in order.
type KafkaPublisher struct {
	writer   messageWriter
	retrier  *retry.Retrier
	logger   zerolog.Logger
	ledgerID string
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic, ledgerID string, logger zerolog.Logger) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, ledgerID, logger)
}

func newKafkaPublisher(writer messageWriter, ledgerID string, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:   writer,
		retrier:  retry.New(retry.WithLogger(logger)),
		logger:   logger,
		ledgerID: ledgerID,
	}
}

// Publish writes event as a JSON message.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := Encode(p.ledgerID, event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(p.ledgerID),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	err = p.retrier.Retry(ctx, "kafka_publish", func() error {
		return p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug().Str("event_type", event.Type).Msg("event published to kafka")
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
