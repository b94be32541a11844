package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/infrastructure/retry"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// NewRetrier creates a retrier that retries deadlocks and serialization
// failures only.
func NewRetrier(logger zerolog.Logger) *retry.Retrier {
	return retry.New(
		retry.WithRetryable(isRetryableError),
		retry.WithInitialInterval(50*time.Millisecond),
		retry.WithLogger(logger),
	)
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
