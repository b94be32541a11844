package bootstrap

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/adapter/repository/file"
	"github.com/iho/splitnest/internal/adapter/repository/instrumented"
	pgstore "github.com/iho/splitnest/internal/adapter/repository/postgres"
	redisstore "github.com/iho/splitnest/internal/adapter/repository/redis"
	"github.com/iho/splitnest/internal/adapter/repository/sqlite"
	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/postgres"
	"github.com/iho/splitnest/internal/usecase"
)

// NewStore builds the ledger store selected by cfg.StoreBackend, wrapped
// with the instrumented decorator. redisClient is used by the redis backend
// and may be nil otherwise. The returned closer releases backend resources.
func NewStore(
	ctx context.Context,
	cfg *config.Config,
	codec *document.Codec,
	redisClient *goredis.Client,
	recorder instrumented.Recorder,
	logger zerolog.Logger,
) (usecase.LedgerStore, func() error, error) {
	var (
		store  usecase.LedgerStore
		closer = func() error { return nil }
	)

	switch cfg.StoreBackend {
	case config.StoreFile:
		store = file.NewStore(cfg.DataFile, codec, logger)

	case config.StoreRedis:
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis store requires a redis client")
		}
		store = redisstore.NewLedgerStore(redisClient, codec, cfg.LedgerID)

	case config.StorePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, nil, err
		}
		store = pgstore.NewLedgerStore(pool, codec, cfg.LedgerID, logger)
		closer = func() error {
			pool.Close()
			return nil
		}

	case config.StoreSQLite:
		s, err := sqlite.NewLedgerStore(cfg.SQLitePath, codec, cfg.LedgerID, logger)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closer = s.Close

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	logger.Info().Str("backend", cfg.StoreBackend).Msg("ledger store configured")

	return instrumented.NewStore(store, cfg.StoreBackend, recorder, logger), closer, nil
}
