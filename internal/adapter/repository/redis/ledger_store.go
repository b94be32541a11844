package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/splitnest/internal/adapter/repository/document"
	"github.com/iho/splitnest/internal/domain"
)

const ledgerKeyPrefix = "splitnest:ledger:"

// LedgerStore implements usecase.LedgerStore using one Redis key per
// ledger. SET replaces the whole value, so a reader never sees a partial
// document.
type LedgerStore struct {
	client *redis.Client
	codec  *document.Codec
	key    string
}

// NewLedgerStore creates a LedgerStore for the ledger named ledgerID.
func NewLedgerStore(client *redis.Client, codec *document.Codec, ledgerID string) *LedgerStore {
	return &LedgerStore{
		client: client,
		codec:  codec,
		key:    ledgerKeyPrefix + ledgerID,
	}
}

// Load reads the document. A missing key yields the zero ledger.
func (s *LedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}

	ledger, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.key, err)
	}
	return ledger, nil
}

// Save replaces the document.
func (s *LedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	data, err := s.codec.Encode(ledger)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// Reset saves the zero ledger.
func (s *LedgerStore) Reset(ctx context.Context) error {
	return s.Save(ctx, domain.NewLedger())
}
