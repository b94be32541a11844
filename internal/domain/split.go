package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SplitMode selects how an expense amount is divided between the partners.
type SplitMode string

const (
	// SplitModeRatio applies the ledger's default split ratio.
	SplitModeRatio SplitMode = "ratio"
	// SplitModePercentage gives partner1 a percentage of the amount.
	SplitModePercentage SplitMode = "percentage"
	// SplitModeAmount gives partner1 a fixed amount.
	SplitModeAmount SplitMode = "amount"
)

// ParseSplitMode resolves s to a SplitMode. An empty string is SplitModeRatio.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitModeRatio:
		return SplitModeRatio, nil
	case SplitModePercentage:
		return SplitModePercentage, nil
	case SplitModeAmount:
		return SplitModeAmount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSplitMode, s)
	}
}

// SplitRule is a split mode together with its parameter. Value is partner1's
// percentage in percentage mode and partner1's amount in amount mode; it is
// unused in ratio mode.
type SplitRule struct {
	Mode  SplitMode
	Value decimal.Decimal
}

// RatioRule splits by the ledger's default ratio.
func RatioRule() SplitRule {
	return SplitRule{Mode: SplitModeRatio}
}

// PercentageRule gives partner1 pct percent of the amount.
func PercentageRule(pct decimal.Decimal) SplitRule {
	return SplitRule{Mode: SplitModePercentage, Value: pct}
}

// AmountRule gives partner1 a fixed share of the amount.
func AmountRule(partner1Amount decimal.Decimal) SplitRule {
	return SplitRule{Mode: SplitModeAmount, Value: partner1Amount}
}

// Validate checks the rule's parameter against the expense amount.
func (r SplitRule) Validate(amount decimal.Decimal) error {
	switch r.Mode {
	case SplitModeRatio:
		return nil
	case SplitModePercentage:
		if r.Value.IsNegative() || r.Value.GreaterThan(hundred) {
			return fmt.Errorf("%w: got %s", ErrInvalidPercentage, r.Value)
		}
		return nil
	case SplitModeAmount:
		chosen := RoundCents(r.Value)
		if chosen.IsNegative() || chosen.GreaterThan(amount) {
			return fmt.Errorf("%w: %s not in [0, %s]", ErrSplitAmountOutside, chosen, amount)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSplitMode, r.Mode)
	}
}

// Share is one partner's part of an expense.
type Share struct {
	Partner string
	Amount  decimal.Decimal
}

// Split is the allocation of one expense between the two partners.
type Split struct {
	Partner1 Share
	Partner2 Share
}

// AmountFor returns partner's share, or zero if partner is not in the split.
func (s Split) AmountFor(partner string) decimal.Decimal {
	switch partner {
	case s.Partner1.Partner:
		return s.Partner1.Amount
	case s.Partner2.Partner:
		return s.Partner2.Amount
	default:
		return decimal.Zero
	}
}

// Total is the sum of both shares.
func (s Split) Total() decimal.Decimal {
	return s.Partner1.Amount.Add(s.Partner2.Amount)
}

// Check verifies the shares add up to amount within one cent.
func (s Split) Check(amount decimal.Decimal) error {
	if s.Total().Sub(amount).Abs().GreaterThanOrEqual(splitTolerance) {
		return fmt.Errorf("split %s + %s != amount %s", s.Partner1.Amount, s.Partner2.Amount, amount)
	}
	return nil
}

// CalculateSplit divides amount between partner1 and partner2 according to
// rule. Both shares are rounded to cents and any rounding remainder goes to
// partner1, so the shares always add up to the cent-rounded amount exactly.
func CalculateSplit(amount decimal.Decimal, partner1, partner2 string, ratio SplitRatio, rule SplitRule) (Split, error) {
	amount = RoundCents(amount)
	if err := ValidateAmount(amount); err != nil {
		return Split{}, err
	}
	if err := rule.Validate(amount); err != nil {
		return Split{}, err
	}

	var partner2Raw decimal.Decimal
	switch rule.Mode {
	case SplitModeRatio:
		if err := ratio.Validate(); err != nil {
			return Split{}, err
		}
		partner2Raw = amount.Mul(ratio[1])
	case SplitModePercentage:
		partner2Raw = amount.Mul(hundred.Sub(rule.Value)).Div(hundred)
	case SplitModeAmount:
		partner2Raw = amount.Sub(RoundCents(rule.Value))
	}

	partner2Share := RoundCents(partner2Raw)

	return Split{
		Partner1: Share{Partner: partner1, Amount: amount.Sub(partner2Share)},
		Partner2: Share{Partner: partner2, Amount: partner2Share},
	}, nil
}
