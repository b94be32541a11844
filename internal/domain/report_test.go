package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringExpenses_PreservesOrder(t *testing.T) {
	expenses := []Expense{
		{ID: "a", Recurring: true, Recurrence: RecurrenceMonthly},
		{ID: "b"},
		{ID: "c", Recurring: true, Recurrence: RecurrenceYearly},
	}

	got := RecurringExpenses(expenses)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Empty(t, RecurringExpenses(nil))
}

func TestBreakdownByCategory(t *testing.T) {
	food1 := expense("10", "p1", "5", "5")
	food1.Category = CategoryFood
	food2 := expense("2.5", "p2", "1.25", "1.25")
	food2.Category = CategoryFood
	bills := expense("80", "p2", "40", "40")
	bills.Category = CategoryBills

	got := BreakdownByCategory("p1", "p2", []Expense{bills, food1, food2})

	require.Len(t, got, 2)
	assert.Equal(t, CategoryFood, got[0].Category)
	assert.True(t, got[0].Total.Equal(d("12.5")))
	assert.True(t, got[0].ByPayer["p1"].Equal(d("10")))
	assert.True(t, got[0].ByPayer["p2"].Equal(d("2.5")))
	assert.Equal(t, 2, got[0].Count)

	assert.Equal(t, CategoryBills, got[1].Category)
	assert.True(t, got[1].ByPayer["p1"].IsZero())
	assert.True(t, got[1].ByPayer["p2"].Equal(d("80")))
}

func TestReversed(t *testing.T) {
	in := []Expense{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	out := Reversed(in)

	assert.Equal(t, []string{"3", "2", "1"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "1", in[0].ID)
}
