package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/splitnest/internal/domain"
)

// MemoryLedgerStore is an in-memory LedgerStore. It stores copies so callers
// cannot change the saved ledger without calling Save.
type MemoryLedgerStore struct {
	mu     sync.Mutex
	ledger *domain.Ledger
	saves  int

	LoadFunc func(ctx context.Context) (*domain.Ledger, error)
	SaveFunc func(ctx context.Context, ledger *domain.Ledger) error
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{}
}

func (m *MemoryLedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ledger == nil {
		return domain.NewLedger(), nil
	}
	return copyLedger(m.ledger), nil
}

func (m *MemoryLedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ledger)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = copyLedger(ledger)
	m.saves++
	return nil
}

func (m *MemoryLedgerStore) Reset(ctx context.Context) error {
	return m.Save(ctx, domain.NewLedger())
}

// Saves returns how many times Save stored a ledger.
func (m *MemoryLedgerStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func copyLedger(l *domain.Ledger) *domain.Ledger {
	c := *l
	c.Expenses = append([]domain.Expense{}, l.Expenses...)
	return &c
}

// SequenceIDGenerator returns exp-1, exp-2, ...
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("exp-%d", g.next)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event

	PublishFunc func(ctx context.Context, event domain.Event) error
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	if p.PublishFunc != nil {
		if err := p.PublishFunc(ctx, event); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Types returns the types of the published events in order.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) ExpenseAdded(domain.Category, float64) {}
func (NopMetrics) LedgerReset()                          {}
func (NopMetrics) EventPublishFailed(string)             {}
func (NopMetrics) AuthAttempt(string)                    {}
