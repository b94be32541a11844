package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
)

func TestAddExpenseRequest_ToUseCaseInput(t *testing.T) {
	sixty := decimal.NewFromInt(60)

	tests := []struct {
		name      string
		request   *AddExpenseRequest
		wantMode  domain.SplitMode
		wantValue decimal.Decimal
		wantErr   error
	}{
		{
			name: "default ratio split",
			request: &AddExpenseRequest{
				Amount: decimal.NewFromInt(10), Description: "Lunch", PaidBy: "Ann", Category: "food",
			},
			wantMode: domain.SplitModeRatio,
		},
		{
			name: "percentage split",
			request: &AddExpenseRequest{
				Amount: decimal.NewFromInt(10), Description: "Lunch", PaidBy: "Ann", Category: "Food",
				SplitMode: "percentage", SplitValue: &sixty,
			},
			wantMode:  domain.SplitModePercentage,
			wantValue: sixty,
		},
		{
			name: "unknown category",
			request: &AddExpenseRequest{
				Amount: decimal.NewFromInt(10), Description: "Lunch", PaidBy: "Ann", Category: "Travel",
			},
			wantErr: domain.ErrInvalidCategory,
		},
		{
			name: "unknown recurrence",
			request: &AddExpenseRequest{
				Amount: decimal.NewFromInt(10), Description: "Rent", PaidBy: "Ann", Category: "Bills",
				Recurring: true, Recurrence: "Daily",
			},
			wantErr: domain.ErrInvalidRecurrence,
		},
		{
			name: "unknown split mode",
			request: &AddExpenseRequest{
				Amount: decimal.NewFromInt(10), Description: "Lunch", PaidBy: "Ann", Category: "Food",
				SplitMode: "shares",
			},
			wantErr: domain.ErrInvalidSplitMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Split.Mode != tt.wantMode || !got.Split.Value.Equal(tt.wantValue) {
				t.Fatalf("unexpected split rule: %+v", got.Split)
			}
			if got.Category != domain.CategoryFood || got.Recurrence != domain.RecurrenceNone {
				t.Fatalf("unexpected input: %+v", got)
			}
		})
	}
}

func TestAddExpenseRequest_SplitValueRequired(t *testing.T) {
	req := &AddExpenseRequest{
		Amount: decimal.NewFromInt(10), Description: "Lunch", PaidBy: "Ann", Category: "Food",
		SplitMode: "amount",
	}

	if _, err := req.ToUseCaseInput(); err == nil {
		t.Fatalf("expected error when split_value is missing")
	}
}

func TestSetSplitRatioRequest_Validate(t *testing.T) {
	share := decimal.RequireFromString("0.6")
	pct := 60

	tests := []struct {
		name    string
		request SetSplitRatioRequest
		wantErr bool
	}{
		{name: "share", request: SetSplitRatioRequest{Partner1Share: &share}},
		{name: "percent", request: SetSplitRatioRequest{Partner1Percent: &pct}},
		{name: "neither", request: SetSplitRatioRequest{}, wantErr: true},
		{name: "both", request: SetSplitRatioRequest{Partner1Share: &share, Partner1Percent: &pct}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.request.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
