package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/splitnest/internal/adapter/http"
	"github.com/iho/splitnest/internal/adapter/http/handler"
	"github.com/iho/splitnest/internal/adapter/http/middleware"
	"github.com/iho/splitnest/internal/infrastructure/bootstrap"
	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/logger"
	"github.com/iho/splitnest/internal/infrastructure/metrics"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Output: os.Stderr,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// run serves the API until ctx is canceled, then shuts down gracefully.
func run(
	ctx context.Context,
	cfg *config.Config,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) error {
	app, err := bootstrap.New(ctx, cfg, metrics.NewWithRegistry(reg), logger)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release resources")
		}
	}()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	metricsHandler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})

	router := httpAdapter.NewRouter(routerConfig(app, rateLimiter, middleware.NewHTTPMetrics(reg), metricsHandler))
	server := newHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("port", cfg.HTTPPort).
			Str("store", cfg.StoreBackend).
			Str("events", cfg.EventsBackend).
			Bool("auth", cfg.AuthEnabled).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if rateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterIdleTimeout)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := rateLimiter.CleanupLimiters(limiterIdleTimeout); n > 0 {
						logger.Debug().Int("removed", n).Msg("pruned idle rate limiters")
					}
				}
			}
		})
	}

	return g.Wait()
}

func routerConfig(
	app *bootstrap.App,
	rateLimiter *middleware.RateLimiter,
	httpMetrics *middleware.HTTPMetrics,
	metricsHandler http.Handler,
) httpAdapter.RouterConfig {
	cfg := httpAdapter.RouterConfig{
		LedgerHandler:    handler.NewLedgerHandler(app.Ledger),
		ExpenseHandler:   handler.NewExpenseHandler(app.Ledger),
		ReportHandler:    handler.NewReportHandler(app.Reports),
		AuthHandler:      handler.NewAuthHandler(app.Auth),
		HealthHandler:    handler.NewHealthHandler(app.Store, app.Config.StoreBackend),
		SettingsHandler:  handler.NewSettingsHandler(app.Settings.Theme),
		IdempotencyStore: app.Idempotency,
		IdempotencyTTL:   app.Config.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		HTTPMetrics:      httpMetrics,
		MetricsHandler:   metricsHandler,
		Logger:           app.Logger,
	}
	if app.Config.AuthEnabled {
		cfg.TokenVerifier = app.JWT
	}
	return cfg
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
