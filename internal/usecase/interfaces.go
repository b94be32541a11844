package usecase

import (
	"context"
	"time"

	"github.com/iho/splitnest/internal/domain"
)

// LedgerStore persists the whole ledger document. Load returns the zero
// ledger when nothing has been saved yet.
type LedgerStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, ledger *domain.Ledger) error
	Reset(ctx context.Context) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// EventPublisher announces ledger changes to external systems.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MetricsRecorder receives domain level measurements.
type MetricsRecorder interface {
	ExpenseAdded(category domain.Category, amount float64)
	LedgerReset()
	EventPublishFailed(eventType string)
	AuthAttempt(result string)
}

// CredentialStore looks up configured login credentials.
type CredentialStore interface {
	Lookup(username string) (domain.Credential, bool)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release forgets key so the request can be retried.
	Release(ctx context.Context, key string) error
}
