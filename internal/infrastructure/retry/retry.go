// Package retry runs operations with exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier retries an operation with exponential backoff while its errors are
// retryable.
type Retrier struct {
	retryable       func(error) bool
	logger          zerolog.Logger
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithMaxRetries caps the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithInitialInterval sets the first backoff delay.
func WithInitialInterval(d time.Duration) Option {
	return func(r *Retrier) { r.initialInterval = d }
}

// WithMaxElapsedTime bounds the total time spent retrying.
func WithMaxElapsedTime(d time.Duration) Option {
	return func(r *Retrier) { r.maxElapsedTime = d }
}

// WithRetryable decides which errors are worth another attempt.
func WithRetryable(fn func(error) bool) Option {
	return func(r *Retrier) { r.retryable = fn }
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Retrier) { r.logger = logger }
}

// New creates a Retrier. By default every error except context cancellation
// is retried up to three times.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		retryable:       notCanceled,
		logger:          zerolog.Nop(),
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry executes operation until it succeeds, fails permanently or the
// retries are used up. The last error is returned.
func (r *Retrier) Retry(ctx context.Context, name string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !r.retryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Str("operation", name).
			Int("retry", retryCount).
			Msg("retryable error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func notCanceled(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
