package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePartnerName(t *testing.T) {
	t.Parallel()

	if err := ValidatePartnerName("Alex"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidatePartnerName("   "); !errors.Is(err, ErrInvalidPartnerName) {
		t.Fatalf("expected ErrInvalidPartnerName, got %v", err)
	}

	tooLong := strings.Repeat("a", MaxPartnerNameLength+1)
	if err := ValidatePartnerName(tooLong); !errors.Is(err, ErrInvalidPartnerName) {
		t.Fatalf("expected ErrInvalidPartnerName, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription("Groceries"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidateDescription(""); !errors.Is(err, ErrInvalidDescription) {
		t.Fatalf("expected ErrInvalidDescription, got %v", err)
	}

	tooLong := strings.Repeat("x", MaxDescriptionLength+1)
	if err := ValidateDescription(tooLong); !errors.Is(err, ErrInvalidDescription) {
		t.Fatalf("expected ErrInvalidDescription, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("0.01")); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-3)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	huge := decimal.RequireFromString(MaxExpenseAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}
