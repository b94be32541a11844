// Package instrumented wraps a ledger store with metrics and debug logging.
package instrumented

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
)

// Operation names used as metric labels.
const (
	OpLoad  = "load"
	OpSave  = "save"
	OpReset = "reset"
)

// Recorder receives one observation per store call.
type Recorder interface {
	StoreOperation(backend, operation string, err error, elapsed time.Duration)
}

// Store decorates a usecase.LedgerStore.
type Store struct {
	next     usecase.LedgerStore
	recorder Recorder
	logger   zerolog.Logger
	backend  string
}

var _ usecase.LedgerStore = (*Store)(nil)

// NewStore wraps next. backend labels every observation.
func NewStore(next usecase.LedgerStore, backend string, recorder Recorder, logger zerolog.Logger) *Store {
	return &Store{
		next:     next,
		recorder: recorder,
		logger:   logger.With().Str("backend", backend).Logger(),
		backend:  backend,
	}
}

// Load implements usecase.LedgerStore.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	start := time.Now()
	ledger, err := s.next.Load(ctx)
	s.observe(OpLoad, start, err)
	return ledger, err
}

// Save implements usecase.LedgerStore.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	start := time.Now()
	err := s.next.Save(ctx, ledger)
	s.observe(OpSave, start, err)
	return err
}

// Reset implements usecase.LedgerStore.
func (s *Store) Reset(ctx context.Context) error {
	start := time.Now()
	err := s.next.Reset(ctx)
	s.observe(OpReset, start, err)
	return err
}

func (s *Store) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.recorder.StoreOperation(s.backend, op, err, elapsed)

	evt := s.logger.Debug()
	if err != nil {
		evt = s.logger.Warn().Err(err)
	}
	evt.Str("operation", op).Dur("duration", elapsed).Msg("ledger store call")
}
