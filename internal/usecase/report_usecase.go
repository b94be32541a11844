package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/splitnest/internal/domain"
)

// ReportUseCase derives read-only views from the ledger.
type ReportUseCase struct {
	store LedgerStore
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(store LedgerStore) *ReportUseCase {
	return &ReportUseCase{store: store}
}

func (uc *ReportUseCase) load(ctx context.Context) (*domain.Ledger, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	return uc.store.Load(ctx)
}

// Balance runs the balance engine over the whole ledger.
func (uc *ReportUseCase) Balance(ctx context.Context) (*domain.Balance, error) {
	ledger, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ledger.HasPartners() {
		return nil, domain.ErrPartnersNotSet
	}

	balance := domain.ComputeBalance(ledger.Partner1, ledger.Partner2, ledger.Expenses)
	return &balance, nil
}

// Recurring returns the recurring expenses in ledger order.
func (uc *ReportUseCase) Recurring(ctx context.Context) ([]domain.Expense, error) {
	ledger, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.RecurringExpenses(ledger.Expenses), nil
}

// CategoryBreakdown sums spending per category and payer.
func (uc *ReportUseCase) CategoryBreakdown(ctx context.Context) ([]domain.CategoryTotal, error) {
	ledger, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BreakdownByCategory(ledger.Partner1, ledger.Partner2, ledger.Expenses), nil
}

// ExportCSV writes one row per expense in ledger order. The split is
// flattened into a column per partner.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	ledger, err := uc.load(ctx)
	if err != nil {
		return err
	}
	if len(ledger.Expenses) == 0 {
		return domain.ErrNoExpenses
	}

	cw := csv.NewWriter(w)

	header := []string{
		"date", "description", "amount", "paid_by", "category", "recurring", "recurrence",
		"split_" + ledger.Partner1, "split_" + ledger.Partner2,
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range ledger.Expenses {
		row := []string{
			e.FormattedDate(),
			e.Description,
			e.Amount.StringFixed(domain.CentPlaces),
			e.PaidBy,
			string(e.Category),
			strconv.FormatBool(e.Recurring),
			string(e.Recurrence),
			e.Split.AmountFor(ledger.Partner1).StringFixed(domain.CentPlaces),
			e.Split.AmountFor(ledger.Partner2).StringFixed(domain.CentPlaces),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
