package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/eventpublisher"
	"github.com/iho/splitnest/internal/usecase"
)

// Publisher is an event publisher holding resources that must be released.
type Publisher interface {
	usecase.EventPublisher
	Close() error
}

// NewPublisher builds the publisher selected by cfg.EventsBackend.
func NewPublisher(cfg *config.Config, logger zerolog.Logger) (Publisher, error) {
	switch cfg.EventsBackend {
	case config.EventsNone:
		return eventpublisher.NopPublisher{}, nil
	case config.EventsLog:
		return eventpublisher.NewLogPublisher(cfg.LedgerID, logger), nil
	case config.EventsAMQP:
		return eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.LedgerID, logger)
	case config.EventsKafka:
		return eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.LedgerID, logger), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
	}
}
