package dto

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
)

// SetPartnersRequest names the two partners.
type SetPartnersRequest struct {
	Partner1 string `json:"partner1"`
	Partner2 string `json:"partner2"`
}

// SetSplitRatioRequest sets the default ratio either as partner1's share in
// [0,1] or as partner1's whole percentage.
type SetSplitRatioRequest struct {
	Partner1Share   *decimal.Decimal `json:"partner1_share,omitempty"`
	Partner1Percent *int             `json:"partner1_percent,omitempty"`
}

// Validate checks exactly one form is given.
func (r *SetSplitRatioRequest) Validate() error {
	if (r.Partner1Share == nil) == (r.Partner1Percent == nil) {
		return errors.New("exactly one of partner1_share and partner1_percent is required")
	}
	return nil
}

// AddExpenseRequest represents a request to record an expense.
type AddExpenseRequest struct {
	SplitValue  *decimal.Decimal `json:"split_value,omitempty"`
	Description string           `json:"description"`
	PaidBy      string           `json:"paid_by"`
	Category    string           `json:"category"`
	Recurrence  string           `json:"recurrence,omitempty"`
	SplitMode   string           `json:"split_mode,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Recurring   bool             `json:"recurring"`
}

// ToUseCaseInput converts to use case input.
func (r *AddExpenseRequest) ToUseCaseInput() (usecase.AddExpenseInput, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	recurrence, err := domain.ParseRecurrence(r.Recurrence)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	mode, err := domain.ParseSplitMode(r.SplitMode)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	split := domain.RatioRule()
	if mode != domain.SplitModeRatio {
		if r.SplitValue == nil {
			return usecase.AddExpenseInput{}, errors.New("split_value is required for split_mode " + string(mode))
		}
		split = domain.SplitRule{Mode: mode, Value: *r.SplitValue}
	}

	return usecase.AddExpenseInput{
		Amount:      r.Amount,
		Description: r.Description,
		PaidBy:      r.PaidBy,
		Category:    category,
		Recurring:   r.Recurring,
		Recurrence:  recurrence,
		Split:       split,
	}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
