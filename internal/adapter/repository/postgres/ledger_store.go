package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/infrastructure/retry"
)

const (
	selectDocumentSQL = `SELECT body FROM ledger_documents WHERE id = $1`

	upsertDocumentSQL = `
INSERT INTO ledger_documents (id, version, body, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (id) DO UPDATE
SET version = EXCLUDED.version, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
)

// Querier is the subset of *pgxpool.Pool the store uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LedgerStore implements usecase.LedgerStore with one row per ledger in
// ledger_documents. Each save is a single upsert statement.
type LedgerStore struct {
	db       Querier
	codec    *document.Codec
	retrier  *retry.Retrier
	ledgerID string
}

// NewLedgerStore creates a LedgerStore for the ledger named ledgerID.
func NewLedgerStore(db Querier, codec *document.Codec, ledgerID string, logger zerolog.Logger) *LedgerStore {
	return &LedgerStore{
		db:       db,
		codec:    codec,
		retrier:  NewRetrier(logger),
		ledgerID: ledgerID,
	}
}

// Load reads the document. A missing row yields the zero ledger.
func (s *LedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	var body []byte
	err := s.db.QueryRow(ctx, selectDocumentSQL, s.ledgerID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select ledger document: %w", err)
	}

	ledger, err := s.codec.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.ledgerID, err)
	}
	return ledger, nil
}

// Save upserts the document.
func (s *LedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	body, err := s.codec.Encode(ledger)
	if err != nil {
		return err
	}

	err = s.retrier.Retry(ctx, "upsert ledger document", func() error {
		_, err := s.db.Exec(ctx, upsertDocumentSQL, s.ledgerID, document.CurrentVersion, body)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert ledger document: %w", err)
	}
	return nil
}

// Reset saves the zero ledger.
func (s *LedgerStore) Reset(ctx context.Context) error {
	return s.Save(ctx, domain.NewLedger())
}
