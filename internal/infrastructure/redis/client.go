// Package redis connects to the redis server backing the ledger and
// idempotency stores.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/infrastructure/retry"
)

// NewClient creates a new Redis client. The first ping is retried briefly so
// the server may still be starting when the process comes up.
func NewClient(ctx context.Context, redisURL string, logger zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	r := retry.New(
		retry.WithMaxRetries(2),
		retry.WithInitialInterval(100*time.Millisecond),
		retry.WithLogger(logger),
	)
	err = r.Retry(ctx, "redis_ping", func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")

	return client, nil
}
