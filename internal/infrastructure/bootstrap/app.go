// Package bootstrap assembles the application from its configuration.
package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	redisstore "github.com/iho/splitnest/internal/adapter/repository/redis"
	"github.com/iho/splitnest/internal/infrastructure/auth"
	"github.com/iho/splitnest/internal/infrastructure/clock"
	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/idgen"
	"github.com/iho/splitnest/internal/infrastructure/metrics"
	"github.com/iho/splitnest/internal/infrastructure/redis"
	"github.com/iho/splitnest/internal/infrastructure/settings"
	"github.com/iho/splitnest/internal/usecase"
)

// App holds the wired use cases and the resources behind them.
type App struct {
	Config      *config.Config
	Settings    *settings.Settings
	Metrics     *metrics.Metrics
	Store       usecase.LedgerStore
	Publisher   Publisher
	Idempotency usecase.IdempotencyStore
	JWT         *auth.JWTManager
	Ledger      *usecase.LedgerUseCase
	Reports     *usecase.ReportUseCase
	Auth        *usecase.AuthUseCase
	Logger      zerolog.Logger

	closers []func() error
}

// Option adjusts how New assembles the App.
type Option func(*options)

type options struct {
	skipStoreCheck bool
}

// WithoutStoreCheck lets New succeed when the persisted ledger cannot be
// read, so the caller can still reset it.
func WithoutStoreCheck() Option {
	return func(o *options) { o.skipStoreCheck = true }
}

// New wires every component selected by cfg. It loads the ledger once and
// fails when the persisted document is unreadable.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{Config: cfg, Metrics: m, Logger: logger}

	s, err := settings.Load(cfg.SettingsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	app.Settings = s

	var redisClient *goredis.Client
	if cfg.StoreBackend == config.StoreRedis || cfg.IdempotencyEnabled {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, redisClient.Close)
	}

	ids := idgen.NewULIDGenerator()
	codec := document.NewCodec(ids)

	store, closeStore, err := NewStore(ctx, cfg, codec, redisClient, m, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, closeStore)

	if !o.skipStoreCheck {
		if _, err := store.Load(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("load ledger: %w", err)
		}
	}

	publisher, err := NewPublisher(cfg, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("events: %w", err)
	}
	app.Publisher = publisher
	app.closers = append(app.closers, publisher.Close)

	if cfg.IdempotencyEnabled {
		app.Idempotency = redisstore.NewIdempotencyStore(redisClient)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			app.Close()
			return nil, err
		}
	}
	app.JWT = auth.NewJWTManager(secret, cfg.JWTExpiration)

	app.Ledger = usecase.NewLedgerUseCase(store, ids, clock.New(), publisher, m, logger)
	app.Reports = usecase.NewReportUseCase(store)
	app.Auth = usecase.NewAuthUseCase(s, app.JWT, m)

	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// randomSecret signs tokens that only live as long as the process.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
