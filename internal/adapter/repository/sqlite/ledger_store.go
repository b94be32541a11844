// Package sqlite stores ledger documents in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/domain"
)

const (
	selectDocumentSQL = `SELECT body FROM ledger_documents WHERE id = ?`

	upsertDocumentSQL = `
INSERT INTO ledger_documents (id, version, body, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (id) DO UPDATE
SET version = excluded.version, body = excluded.body, updated_at = excluded.updated_at`
)

// LedgerStore implements usecase.LedgerStore with one row per ledger.
type LedgerStore struct {
	db       *sql.DB
	codec    *document.Codec
	logger   zerolog.Logger
	ledgerID string
}

// NewLedgerStore opens (creating if needed) the database at dbPath and
// migrates its schema.
func NewLedgerStore(dbPath string, codec *document.Codec, ledgerID string, logger zerolog.Logger) (*LedgerStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Str("path", dbPath).Msg("sqlite ledger store ready")

	return &LedgerStore{
		db:       db,
		codec:    codec,
		logger:   logger,
		ledgerID: ledgerID,
	}, nil
}

// Close closes the database.
func (s *LedgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the document. A missing row yields the zero ledger.
func (s *LedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	var body string
	err := s.db.QueryRowContext(ctx, selectDocumentSQL, s.ledgerID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select ledger document: %w", err)
	}

	ledger, err := s.codec.Decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.ledgerID, err)
	}
	return ledger, nil
}

// Save upserts the document in a single statement.
func (s *LedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	body, err := s.codec.Encode(ledger)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, upsertDocumentSQL, s.ledgerID, document.CurrentVersion, string(body)); err != nil {
		return fmt.Errorf("upsert ledger document: %w", err)
	}

	s.logger.Debug().Str("ledger_id", s.ledgerID).Int("expenses", len(ledger.Expenses)).Msg("ledger saved to sqlite")
	return nil
}

// Reset saves the zero ledger.
func (s *LedgerStore) Reset(ctx context.Context) error {
	return s.Save(ctx, domain.NewLedger())
}
