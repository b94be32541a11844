package domain

import "github.com/shopspring/decimal"

// RecurringExpenses returns the recurring expenses in their original order.
func RecurringExpenses(expenses []Expense) []Expense {
	result := make([]Expense, 0)
	for _, e := range expenses {
		if e.Recurring {
			result = append(result, e)
		}
	}
	return result
}

// CategoryTotal is the spending in one category, also broken down by payer.
type CategoryTotal struct {
	ByPayer  map[string]decimal.Decimal
	Category Category
	Total    decimal.Decimal
	Count    int
}

// BreakdownByCategory sums expense amounts per category and payer. Only
// categories with at least one expense are returned, in Categories order.
func BreakdownByCategory(partner1, partner2 string, expenses []Expense) []CategoryTotal {
	totals := make(map[Category]*CategoryTotal, len(Categories))

	for _, e := range expenses {
		ct, ok := totals[e.Category]
		if !ok {
			ct = &CategoryTotal{
				Category: e.Category,
				Total:    decimal.Zero,
				ByPayer: map[string]decimal.Decimal{
					partner1: decimal.Zero,
					partner2: decimal.Zero,
				},
			}
			totals[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.ByPayer[e.PaidBy] = ct.ByPayer[e.PaidBy].Add(e.Amount)
		ct.Count++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, c := range Categories {
		if ct, ok := totals[c]; ok {
			result = append(result, *ct)
		}
	}
	return result
}

// Reversed returns expenses newest first without touching the input.
func Reversed(expenses []Expense) []Expense {
	result := make([]Expense, len(expenses))
	for i, e := range expenses {
		result[len(expenses)-1-i] = e
	}
	return result
}
