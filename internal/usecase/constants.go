package usecase

import "time"

const (
	// DefaultStoreTimeout bounds one load-mutate-save cycle against the store.
	DefaultStoreTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
