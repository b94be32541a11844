package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
)

// LedgerUseCase handles the operations that read or change the ledger.
// Every mutation is one load-mutate-save cycle. The mutex serialises cycles
// inside one process only; writers in other processes are not coordinated.
type LedgerUseCase struct {
	store     LedgerStore
	idGen     IDGenerator
	clock     Clock
	publisher EventPublisher
	metrics   MetricsRecorder
	logger    zerolog.Logger
	mu        sync.Mutex
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	store LedgerStore,
	idGen IDGenerator,
	clock Clock,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		store:     store,
		idGen:     idGen,
		clock:     clock,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetLedger returns the persisted ledger.
func (uc *LedgerUseCase) GetLedger(ctx context.Context) (*domain.Ledger, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	return uc.store.Load(ctx)
}

// SetPartners names the two partners of a fresh ledger.
func (uc *LedgerUseCase) SetPartners(ctx context.Context, partner1, partner2 string) (*domain.Ledger, error) {
	partner1 = strings.TrimSpace(partner1)
	partner2 = strings.TrimSpace(partner2)
	if err := domain.ValidatePartnerName(partner1); err != nil {
		return nil, err
	}
	if err := domain.ValidatePartnerName(partner2); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	ledger, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := ledger.SetPartners(partner1, partner2); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	uc.logger.Info().
		Str("partner1", ledger.Partner1).
		Str("partner2", ledger.Partner2).
		Msg("partners set")
	uc.publish(ctx, domain.NewPartnersSetEvent(ledger.Partner1, ledger.Partner2, uc.clock.Now()))

	return ledger, nil
}

// SetSplitRatio makes [share, 1-share] the default split for new expenses.
func (uc *LedgerUseCase) SetSplitRatio(ctx context.Context, partner1Share decimal.Decimal) (*domain.Ledger, error) {
	ratio, err := domain.NewSplitRatio(partner1Share)
	if err != nil {
		return nil, err
	}
	return uc.updateRatio(ctx, ratio)
}

// SetSplitRatioPercent sets the default split from partner1's whole percentage.
func (uc *LedgerUseCase) SetSplitRatioPercent(ctx context.Context, pct int) (*domain.Ledger, error) {
	ratio, err := domain.NewSplitRatioPercent(pct)
	if err != nil {
		return nil, err
	}
	return uc.updateRatio(ctx, ratio)
}

func (uc *LedgerUseCase) updateRatio(ctx context.Context, ratio domain.SplitRatio) (*domain.Ledger, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	ledger, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	ledger.SplitRatio = ratio
	if err := uc.store.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	uc.logger.Info().Int("partner1_percent", ratio.Partner1Percent()).Msg("split ratio updated")
	uc.publish(ctx, domain.NewSplitRatioUpdatedEvent(ratio, uc.clock.Now()))

	return ledger, nil
}

// AddExpenseInput represents input for adding an expense.
type AddExpenseInput struct {
	Split       domain.SplitRule
	Description string
	PaidBy      string
	Category    domain.Category
	Recurrence  domain.Recurrence
	Amount      decimal.Decimal
	Recurring   bool
}

// Validate checks the input without touching the ledger. It returns the
// amount rounded to cents.
func (in AddExpenseInput) Validate() (decimal.Decimal, error) {
	amount := domain.RoundCents(in.Amount)
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if err := domain.ValidateDescription(in.Description); err != nil {
		return decimal.Zero, err
	}
	if !in.Category.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, in.Category)
	}
	if err := domain.ValidateRecurrence(in.Recurring, in.Recurrence); err != nil {
		return decimal.Zero, err
	}
	if err := in.splitRule().Validate(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func (in AddExpenseInput) splitRule() domain.SplitRule {
	if in.Split.Mode == "" {
		return domain.RatioRule()
	}
	return in.Split
}

// AddExpense validates, splits and appends a new expense.
func (uc *LedgerUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	// 1. Reject bad input before the ledger is read
	amount, err := input.Validate()
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	// 2. Load and check the payer against the partners
	ledger, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ledger.HasPartners() {
		return nil, domain.ErrPartnersNotSet
	}
	paidBy := strings.TrimSpace(input.PaidBy)
	if !ledger.IsPartner(paidBy) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPartner, input.PaidBy)
	}

	// 3. Split
	split, err := domain.CalculateSplit(amount, ledger.Partner1, ledger.Partner2, ledger.SplitRatio, input.splitRule())
	if err != nil {
		return nil, err
	}

	expense := domain.Expense{
		ID:          uc.idGen.Generate(),
		Date:        uc.clock.Now().Truncate(time.Second),
		Amount:      amount,
		Description: strings.TrimSpace(input.Description),
		PaidBy:      paidBy,
		Category:    input.Category,
		Recurring:   input.Recurring,
		Recurrence:  input.Recurrence,
		Split:       split,
	}

	// 4. Append and persist
	ledger.Append(expense)
	if err := uc.store.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	uc.metrics.ExpenseAdded(expense.Category, expense.Amount.InexactFloat64())
	uc.logger.Info().
		Str("expense_id", expense.ID).
		Str("amount", expense.Amount.StringFixed(domain.CentPlaces)).
		Str("paid_by", expense.PaidBy).
		Str("category", string(expense.Category)).
		Msg("expense added")
	uc.publish(ctx, domain.NewExpenseAddedEvent(expense, uc.clock.Now()))

	return &expense, nil
}

// ListExpensesInput filters and orders the expense history.
type ListExpensesInput struct {
	Category      domain.Category
	NewestFirst   bool
	RecurringOnly bool
}

// ListExpenses returns the expenses matching input.
func (uc *LedgerUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]domain.Expense, error) {
	if input.Category != "" && !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, input.Category)
	}

	ledger, err := uc.GetLedger(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Expense, 0, len(ledger.Expenses))
	for _, e := range ledger.Expenses {
		if input.Category != "" && e.Category != input.Category {
			continue
		}
		if input.RecurringOnly && !e.Recurring {
			continue
		}
		result = append(result, e)
	}

	if input.NewestFirst {
		result = domain.Reversed(result)
	}
	return result, nil
}

// GetExpense returns one expense by ID.
func (uc *LedgerUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	ledger, err := uc.GetLedger(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := ledger.FindExpense(id)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Reset clears expenses, partner names and the split ratio. A document that
// cannot be decoded is replaced as well, since reset is an explicit request
// to start over.
func (uc *LedgerUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	cleared := 0
	ledger, err := uc.store.Load(ctx)
	switch {
	case err == nil:
		cleared = len(ledger.Expenses)
	case errors.Is(err, domain.ErrMalformedDocument):
		uc.logger.Warn().Err(err).Msg("resetting unreadable ledger document")
	default:
		return err
	}

	if err := uc.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}

	uc.metrics.LedgerReset()
	uc.logger.Info().Int("expenses_cleared", cleared).Msg("ledger reset")
	uc.publish(ctx, domain.NewLedgerResetEvent(cleared, uc.clock.Now()))

	return nil
}

// CheckConsistency verifies that every split adds up to its amount and that
// paid and owed totals agree with the sum of amounts.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) error {
	ledger, err := uc.GetLedger(ctx)
	if err != nil {
		return err
	}
	return ledger.CheckConsistency()
}

// publish announces event. Failures never undo the save that preceded them.
func (uc *LedgerUseCase) publish(ctx context.Context, event domain.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.metrics.EventPublishFailed(event.Type)
		uc.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to publish ledger event")
	}
}
