package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/domain"
)

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	return NewStore(path, document.NewCodec(&seqIDs{}), zerolog.Nop())
}

func sampleLedger(t *testing.T) *domain.Ledger {
	t.Helper()

	ledger := domain.NewLedger()
	require.NoError(t, ledger.SetPartners("Ann", "Bob"))

	split, err := domain.CalculateSplit(decimal.NewFromInt(100), "Ann", "Bob", ledger.SplitRatio, domain.RatioRule())
	require.NoError(t, err)

	ledger.Append(domain.Expense{
		ID:          "e1",
		Date:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local),
		Amount:      decimal.NewFromInt(100),
		Description: "Dinner",
		PaidBy:      "Ann",
		Category:    domain.CategoryFood,
		Recurrence:  domain.RecurrenceNone,
		Split:       split,
	})
	return ledger
}

func TestStore_LoadMissingFileIsFirstRun(t *testing.T) {
	store := newTestStore(t)

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ledger.HasPartners())
	assert.True(t, ledger.SplitRatio.Equal(domain.DefaultSplitRatio()))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleLedger(t)))

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ledger.Expenses, 1)
	assert.Equal(t, "Dinner", ledger.Expenses[0].Description)
	assert.Equal(t, "2024-06-01 12:00:00", ledger.Expenses[0].FormattedDate())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestStore_SaveOfLoadLeavesFileUnchanged(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleLedger(t)))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, ledger))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleLedger(t)))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestStore_LegacyFileMigratesOnLoad(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"partner1": "", "partner2": "", "expenses": []}`), 0o644))

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ledger.SplitRatio.Equal(domain.DefaultSplitRatio()))
}

func TestStore_MalformedFileIsReported(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"partner1": 42`), 0o644))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, `{"partner1": 42`, string(content), "malformed file must not be rewritten")
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleLedger(t)))
	require.NoError(t, store.Reset(ctx))

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.Expenses)
	assert.False(t, ledger.HasPartners())
}

func TestStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, sampleLedger(t)), context.Canceled)
	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}
