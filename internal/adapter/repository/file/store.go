// Package file stores the ledger document in a single JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/infrastructure/retry"
)

const filePerm = 0o644

// Store implements usecase.LedgerStore on a local file. Saves write a
// temporary file next to the target and rename it into place, so readers
// see either the old or the new document, never a partial one.
type Store struct {
	codec   *document.Codec
	retrier *retry.Retrier
	logger  zerolog.Logger
	path    string
}

// NewStore creates a Store for path.
func NewStore(path string, codec *document.Codec, logger zerolog.Logger) *Store {
	return &Store{
		codec:   codec,
		retrier: retry.New(retry.WithLogger(logger)),
		logger:  logger,
		path:    path,
	}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file is a first run and yields the
// zero ledger.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("path", s.path).Msg("no ledger file yet, starting empty")
		return domain.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	ledger, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return ledger, nil
}

// Save atomically replaces the document with ledger.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	data, err := s.codec.Encode(ledger)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmpPath, err := writeTemp(dir, filepath.Base(s.path), data)
	if err != nil {
		return err
	}

	err = s.retrier.Retry(ctx, "rename ledger file", func() error {
		return os.Rename(tmpPath, s.path)
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace ledger file: %w", err)
	}

	return nil
}

// Reset saves the zero ledger.
func (s *Store) Reset(ctx context.Context) error {
	return s.Save(ctx, domain.NewLedger())
}

func writeTemp(dir, base string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), nil
}
