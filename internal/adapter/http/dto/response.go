package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LedgerResponse represents the ledger header in API responses.
type LedgerResponse struct {
	Partner1        string            `json:"partner1"`
	Partner2        string            `json:"partner2"`
	SplitRatio      []decimal.Decimal `json:"split_ratio"`
	Partner1Percent int               `json:"partner1_percent"`
	ExpenseCount    int               `json:"expense_count"`
}

// LedgerFromDomain converts a domain ledger to response.
func LedgerFromDomain(l *domain.Ledger) *LedgerResponse {
	return &LedgerResponse{
		Partner1:        l.Partner1,
		Partner2:        l.Partner2,
		SplitRatio:      []decimal.Decimal{l.SplitRatio[0], l.SplitRatio[1]},
		Partner1Percent: l.SplitRatio.Partner1Percent(),
		ExpenseCount:    len(l.Expenses),
	}
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string                     `json:"id"`
	Date        string                     `json:"date"`
	Description string                     `json:"description"`
	PaidBy      string                     `json:"paid_by"`
	Category    string                     `json:"category"`
	Recurrence  string                     `json:"recurrence"`
	Amount      decimal.Decimal            `json:"amount"`
	Split       map[string]decimal.Decimal `json:"split"`
	Recurring   bool                       `json:"recurring"`
}

// ExpenseFromDomain converts a domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Date:        e.FormattedDate(),
		Description: e.Description,
		PaidBy:      e.PaidBy,
		Category:    string(e.Category),
		Recurrence:  string(e.Recurrence),
		Amount:      e.Amount,
		Split: map[string]decimal.Decimal{
			e.Split.Partner1.Partner: e.Split.Partner1.Amount,
			e.Split.Partner2.Partner: e.Split.Partner2.Amount,
		},
		Recurring: e.Recurring,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i := range expenses {
		result[i] = ExpenseFromDomain(&expenses[i])
	}
	return result
}

// ListExpensesResponse represents a list of expenses.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int                `json:"total"`
}

// PartnerBalanceResponse is one partner's totals.
type PartnerBalanceResponse struct {
	Partner    string          `json:"partner"`
	Summary    string          `json:"summary"`
	Paid       decimal.Decimal `json:"paid"`
	Owed       decimal.Decimal `json:"owed"`
	Net        decimal.Decimal `json:"net"`
	Settlement decimal.Decimal `json:"settlement"`
}

// SettlementResponse is the payment due between the partners.
type SettlementResponse struct {
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Transfer decimal.Decimal `json:"transfer"`
	Settled  bool            `json:"settled"`
}

// BalanceResponse represents the balance report.
type BalanceResponse struct {
	Summary    string                   `json:"summary"`
	Partners   []PartnerBalanceResponse `json:"partners"`
	Settlement SettlementResponse       `json:"settlement"`
	Total      decimal.Decimal          `json:"total"`
}

// BalanceFromDomain converts a balance to response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	partner := func(p domain.PartnerBalance) PartnerBalanceResponse {
		return PartnerBalanceResponse{
			Partner:    p.Partner,
			Summary:    p.Line(),
			Paid:       p.Paid,
			Owed:       p.Owed,
			Net:        p.Net,
			Settlement: b.SettlementFor(p.Partner),
		}
	}

	return &BalanceResponse{
		Summary:  b.Summary(),
		Partners: []PartnerBalanceResponse{partner(b.Partner1), partner(b.Partner2)},
		Settlement: SettlementResponse{
			From:     b.Settlement.From,
			To:       b.Settlement.To,
			Amount:   b.Settlement.Amount,
			Transfer: b.Settlement.Transfer,
			Settled:  b.Settlement.Settled(),
		},
		Total: b.Total,
	}
}

// CategoryTotalResponse is the spending in one category.
type CategoryTotalResponse struct {
	Category string                     `json:"category"`
	Total    decimal.Decimal            `json:"total"`
	ByPayer  map[string]decimal.Decimal `json:"by_payer"`
	Count    int                        `json:"count"`
}

// CategoryTotalsFromDomain converts a category breakdown to responses.
func CategoryTotalsFromDomain(totals []domain.CategoryTotal) []CategoryTotalResponse {
	result := make([]CategoryTotalResponse, len(totals))
	for i, ct := range totals {
		result[i] = CategoryTotalResponse{
			Category: string(ct.Category),
			Total:    ct.Total,
			ByPayer:  ct.ByPayer,
			Count:    ct.Count,
		}
	}
	return result
}

// ConsistencyResponse reports the result of a consistency check.
type ConsistencyResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Consistent bool   `json:"consistent"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
