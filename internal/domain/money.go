package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CentPlaces is the number of decimal places money is kept at.
const CentPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	// settleTolerance is the net difference below which partners are settled.
	settleTolerance = decimal.RequireFromString("0.005")

	// splitTolerance is the allowed drift between a split's sum and its amount.
	splitTolerance = decimal.RequireFromString("0.01")
)

// RoundCents rounds d half away from zero to whole cents.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// ParseAmount parses a user supplied amount. Both "12.34" and "12,34" are
// accepted and the result is rounded to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	return RoundCents(d), nil
}

// FormatMoney renders d as dollars with two decimals, e.g. "$50.00".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(CentPlaces)
	}
	return "$" + d.StringFixed(CentPlaces)
}
