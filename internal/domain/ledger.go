package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ratioEpsilon = decimal.RequireFromString("0.000001")

// SplitRatio is the default allocation of an expense between partner1 and
// partner2.
type SplitRatio [2]decimal.Decimal

// DefaultSplitRatio is an even split.
func DefaultSplitRatio() SplitRatio {
	half := decimal.RequireFromString("0.5")
	return SplitRatio{half, half}
}

// NewSplitRatio builds a ratio from partner1's share in [0,1].
func NewSplitRatio(partner1Share decimal.Decimal) (SplitRatio, error) {
	if partner1Share.IsNegative() || partner1Share.GreaterThan(decimal.NewFromInt(1)) {
		return SplitRatio{}, fmt.Errorf("%w: share %s", ErrInvalidSplitRatio, partner1Share)
	}
	return SplitRatio{partner1Share, decimal.NewFromInt(1).Sub(partner1Share)}, nil
}

// NewSplitRatioPercent builds a ratio from partner1's whole percentage.
func NewSplitRatioPercent(pct int) (SplitRatio, error) {
	if pct < 0 || pct > 100 {
		return SplitRatio{}, fmt.Errorf("%w: %d%%", ErrInvalidSplitRatio, pct)
	}
	return NewSplitRatio(decimal.NewFromInt(int64(pct)).Div(hundred))
}

// Validate checks both shares are in [0,1] and add up to 1.
func (r SplitRatio) Validate() error {
	one := decimal.NewFromInt(1)
	for _, share := range r {
		if share.IsNegative() || share.GreaterThan(one) {
			return ErrInvalidSplitRatio
		}
	}
	if r[0].Add(r[1]).Sub(one).Abs().GreaterThan(ratioEpsilon) {
		return ErrInvalidSplitRatio
	}
	return nil
}

// Partner1Percent returns partner1's share as a whole percentage.
func (r SplitRatio) Partner1Percent() int {
	return int(r[0].Mul(hundred).Round(0).IntPart())
}

// Equal reports whether both shares match.
func (r SplitRatio) Equal(other SplitRatio) bool {
	return r[0].Equal(other[0]) && r[1].Equal(other[1])
}

// Ledger is the whole persisted state of one couple's shared expenses.
type Ledger struct {
	Partner1   string
	Partner2   string
	Expenses   []Expense
	SplitRatio SplitRatio
}

// NewLedger returns the zero ledger: no partners, no expenses, even split.
func NewLedger() *Ledger {
	return &Ledger{
		Expenses:   []Expense{},
		SplitRatio: DefaultSplitRatio(),
	}
}

// HasPartners reports whether both partner names are set.
func (l *Ledger) HasPartners() bool {
	return l.Partner1 != "" && l.Partner2 != ""
}

// IsPartner reports whether name is one of the two partners.
func (l *Ledger) IsPartner(name string) bool {
	return name != "" && (name == l.Partner1 || name == l.Partner2)
}

// SetPartners names the two partners. Names are immutable once both are set.
func (l *Ledger) SetPartners(partner1, partner2 string) error {
	if l.HasPartners() {
		return ErrPartnersAlreadySet
	}

	partner1 = strings.TrimSpace(partner1)
	partner2 = strings.TrimSpace(partner2)
	if err := ValidatePartnerName(partner1); err != nil {
		return err
	}
	if err := ValidatePartnerName(partner2); err != nil {
		return err
	}
	if partner1 == partner2 {
		return fmt.Errorf("%w: partners must have different names", ErrInvalidPartnerName)
	}

	l.Partner1, l.Partner2 = partner1, partner2
	return nil
}

// Append adds e to the end of the expense sequence.
func (l *Ledger) Append(e Expense) {
	l.Expenses = append(l.Expenses, e)
}

// FindExpense returns the expense with the given ID.
func (l *Ledger) FindExpense(id string) (Expense, error) {
	for _, e := range l.Expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return Expense{}, ErrExpenseNotFound
}

// Reset returns l to the zero ledger.
func (l *Ledger) Reset() {
	*l = *NewLedger()
}

// CheckConsistency verifies every split adds up to its expense amount and
// that paid and owed totals agree.
func (l *Ledger) CheckConsistency() error {
	for _, e := range l.Expenses {
		if err := e.Split.Check(e.Amount); err != nil {
			return fmt.Errorf("%w: expense %s: %v", ErrInconsistentLedger, e.ID, err)
		}
	}

	b := ComputeBalance(l.Partner1, l.Partner2, l.Expenses)
	paid := b.Partner1.Paid.Add(b.Partner2.Paid)
	owed := b.Partner1.Owed.Add(b.Partner2.Owed)
	drift := splitTolerance.Mul(decimal.NewFromInt(int64(len(l.Expenses))))
	if !paid.Equal(b.Total) || owed.Sub(b.Total).Abs().GreaterThan(drift) {
		return fmt.Errorf("%w: paid=%s owed=%s total=%s", ErrInconsistentLedger, paid, owed, b.Total)
	}
	return nil
}
