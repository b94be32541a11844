package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExpenseFromDomain(t *testing.T) {
	e := &domain.Expense{
		ID:          "exp-1",
		Date:        time.Date(2024, 5, 17, 18, 30, 45, 0, time.Local),
		Description: "Dinner",
		PaidBy:      "Ann",
		Category:    domain.CategoryFood,
		Recurrence:  domain.RecurrenceNone,
		Amount:      d("40"),
		Split: domain.Split{
			Partner1: domain.Share{Partner: "Ann", Amount: d("20")},
			Partner2: domain.Share{Partner: "Bob", Amount: d("20")},
		},
	}

	resp := ExpenseFromDomain(e)
	if resp.ID != "exp-1" || resp.Date != "2024-05-17 18:30:45" || resp.Category != "Food" {
		t.Fatalf("unexpected expense response: %+v", resp)
	}
	if !resp.Split["Bob"].Equal(d("20")) {
		t.Fatalf("expected Bob share 20, got %s", resp.Split["Bob"])
	}
}

func TestBalanceFromDomain(t *testing.T) {
	b := domain.ComputeBalance("p1", "p2", []domain.Expense{
		{Amount: d("100"), PaidBy: "p1", Split: domain.Split{
			Partner1: domain.Share{Partner: "p1", Amount: d("50")},
			Partner2: domain.Share{Partner: "p2", Amount: d("50")},
		}},
		{Amount: d("50"), PaidBy: "p2", Split: domain.Split{
			Partner1: domain.Share{Partner: "p1", Amount: d("25")},
			Partner2: domain.Share{Partner: "p2", Amount: d("25")},
		}},
	})

	resp := BalanceFromDomain(&b)
	if resp.Summary != "p2 owes p1 $50.00" {
		t.Fatalf("unexpected summary %q", resp.Summary)
	}
	if resp.Settlement.From != "p2" || !resp.Settlement.Amount.Equal(d("50")) || !resp.Settlement.Transfer.Equal(d("25")) {
		t.Fatalf("unexpected settlement %+v", resp.Settlement)
	}
	if resp.Partners[0].Summary != "p1 paid: $100.00 | owes: $75.00" {
		t.Fatalf("unexpected partner line %q", resp.Partners[0].Summary)
	}
	if !resp.Partners[1].Settlement.Equal(d("-50")) {
		t.Fatalf("expected p2 settlement -50, got %s", resp.Partners[1].Settlement)
	}
}

func TestLedgerFromDomain_JSON(t *testing.T) {
	l := domain.NewLedger()
	if err := l.SetPartners("Ann", "Bob"); err != nil {
		t.Fatalf("SetPartners: %v", err)
	}

	body, err := json.Marshal(LedgerFromDomain(l))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"split_ratio":["0.5","0.5"]`) || !strings.Contains(string(body), `"partner1_percent":50`) {
		t.Fatalf("unexpected ledger JSON: %s", body)
	}
}
