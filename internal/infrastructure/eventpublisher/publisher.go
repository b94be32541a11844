// Package eventpublisher delivers ledger events to external systems.
package eventpublisher

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/domain"
)

// NopPublisher discards events.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger   zerolog.Logger
	ledgerID string
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(ledgerID string, logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger, ledgerID: ledgerID}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	body, err := Encode(p.ledgerID, event)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_type", event.Type).
		Str("ledger_id", p.ledgerID).
		RawJSON("event", body).
		Msg("event published")

	return nil
}

// Close does nothing.
func (p *LogPublisher) Close() error { return nil }
