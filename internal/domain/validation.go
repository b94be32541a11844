package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidPartnerName = errors.New("invalid partner name")
	ErrInvalidDescription = errors.New("invalid description")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxPartnerNameLength = 64
	MaxDescriptionLength = 200
	MaxExpenseAmount     = "1000000000" // 1 billion
)

// ValidatePartnerName validates a partner name.
func ValidatePartnerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPartnerName)
	}

	if len(name) > MaxPartnerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidPartnerName, MaxPartnerNameLength)
	}

	return nil
}

// ValidateDescription validates an expense description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount validates an expense amount already rounded to cents.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount := decimal.RequireFromString(MaxExpenseAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxExpenseAmount)
	}

	return nil
}
