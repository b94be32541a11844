package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/adapter/http/handler"
	"github.com/iho/splitnest/internal/adapter/http/middleware"
	"github.com/iho/splitnest/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler   *handler.LedgerHandler
	ExpenseHandler  *handler.ExpenseHandler
	ReportHandler   *handler.ReportHandler
	AuthHandler     *handler.AuthHandler
	HealthHandler   *handler.HealthHandler
	SettingsHandler *handler.SettingsHandler

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	TokenVerifier    middleware.TokenVerifier // nil leaves the API open
	HTTPMetrics      *middleware.HTTPMetrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			if cfg.TokenVerifier != nil {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
			}
			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
			}

			r.Route("/ledger", func(r chi.Router) {
				r.Get("/", cfg.LedgerHandler.Get)
				r.Put("/partners", cfg.LedgerHandler.SetPartners)
				r.Put("/split-ratio", cfg.LedgerHandler.SetSplitRatio)
				r.Post("/reset", cfg.LedgerHandler.Reset)
				r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/", cfg.ExpenseHandler.List)
				r.Get("/export", cfg.ReportHandler.Export)
				r.Get("/{id}", cfg.ExpenseHandler.Get)
			})

			r.Get("/balance", cfg.ReportHandler.Balance)
			r.Get("/recurring", cfg.ReportHandler.Recurring)
			r.Get("/reports/categories", cfg.ReportHandler.Categories)
			r.Get("/settings/theme", cfg.SettingsHandler.Theme)
		})
	})

	return r
}
