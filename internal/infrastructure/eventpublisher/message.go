package eventpublisher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/splitnest/internal/domain"
)

// Message is the JSON envelope every publisher sends.
type Message struct {
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
	Type       string          `json:"type"`
	LedgerID   string          `json:"ledger_id"`
}

// Encode wraps event in a Message for ledgerID and marshals it.
func Encode(ledgerID string, event domain.Event) ([]byte, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.Type, err)
	}

	body, err := json.Marshal(Message{
		Type:       event.Type,
		LedgerID:   ledgerID,
		OccurredAt: event.OccurredAt.UTC(),
		Payload:    payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s message: %w", event.Type, err)
	}

	return body, nil
}
