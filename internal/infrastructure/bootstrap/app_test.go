package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/splitnest/internal/adapter/repository/instrumented"
	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/eventpublisher"
	"github.com/iho/splitnest/internal/infrastructure/metrics"
	"github.com/iho/splitnest/internal/usecase"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		StoreBackend:  config.StoreFile,
		DataFile:      filepath.Join(dir, "data.json"),
		SQLitePath:    filepath.Join(dir, "splitnest.db"),
		LedgerID:      "test",
		SettingsFile:  filepath.Join(dir, "config.toml"),
		EventsBackend: config.EventsNone,
	}
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	app, err := New(context.Background(), cfg, metrics.NewWithRegistry(prometheus.NewRegistry()), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func exercise(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	_, err := app.Ledger.SetPartners(ctx, "Ann", "Bob")
	require.NoError(t, err)

	_, err = app.Ledger.AddExpense(ctx, usecase.AddExpenseInput{
		Amount:      decimal.NewFromInt(40),
		Description: "Groceries",
		PaidBy:      "Ann",
		Category:    domain.CategoryFood,
		Recurrence:  domain.RecurrenceNone,
	})
	require.NoError(t, err)

	balance, err := app.Reports.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bob owes Ann $40.00", balance.Summary())
}

func TestNew_FileBackend(t *testing.T) {
	app := newApp(t, testConfig(t))

	assert.IsType(t, &instrumented.Store{}, app.Store)
	assert.IsType(t, eventpublisher.NopPublisher{}, app.Publisher)
	assert.Nil(t, app.Idempotency)
	exercise(t, app)
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = config.StoreSQLite
	cfg.EventsBackend = config.EventsLog

	exercise(t, newApp(t, cfg))
}

func TestNew_RedisBackendWithIdempotency(t *testing.T) {
	s := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.StoreBackend = config.StoreRedis
	cfg.RedisURL = "redis://" + s.Addr()
	cfg.IdempotencyEnabled = true

	app := newApp(t, cfg)
	assert.NotNil(t, app.Idempotency)
	exercise(t, app)
	assert.True(t, s.Exists("splitnest:ledger:test"))
}

func TestNew_UnknownBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = "mongo"
	_, err := New(context.Background(), cfg, metrics.NewWithRegistry(prometheus.NewRegistry()), zerolog.Nop())
	assert.Error(t, err)

	_, err = NewPublisher(&config.Config{EventsBackend: "nats"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNew_MalformedLedgerFailsStartup(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("{not json"), 0o600))

	_, err := New(context.Background(), cfg, metrics.NewWithRegistry(prometheus.NewRegistry()), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)

	app, err := New(context.Background(), cfg, metrics.NewWithRegistry(prometheus.NewRegistry()), zerolog.Nop(), WithoutStoreCheck())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Ledger.Reset(context.Background()))
	ledger, err := app.Ledger.GetLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ledger.Expenses)
}
