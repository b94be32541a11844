package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the persisted and displayed form of Expense.Date.
const DateLayout = "2006-01-02 15:04:05"

// Category classifies an expense.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFood, CategoryEntertainment, CategoryBills, CategoryOther}

// ParseCategory resolves s to a Category, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Recurrence is the repeat frequency of a recurring expense.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceMonthly Recurrence = "Monthly"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceYearly  Recurrence = "Yearly"
)

var recurrences = []Recurrence{RecurrenceNone, RecurrenceMonthly, RecurrenceWeekly, RecurrenceYearly}

// ParseRecurrence resolves s to a Recurrence, ignoring case. An empty string
// is RecurrenceNone.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecurrenceNone, nil
	}
	for _, r := range recurrences {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// ValidateRecurrence checks that r agrees with the recurring flag.
func ValidateRecurrence(recurring bool, r Recurrence) error {
	switch r {
	case RecurrenceNone:
		if recurring {
			return fmt.Errorf("%w: recurring expense needs a frequency", ErrInvalidRecurrence)
		}
	case RecurrenceMonthly, RecurrenceWeekly, RecurrenceYearly:
		if !recurring {
			return fmt.Errorf("%w: %s given for a one-off expense", ErrInvalidRecurrence, r)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, r)
	}
	return nil
}

// Expense is a single shared cost. Expenses are never modified after they
// are appended to a ledger.
type Expense struct {
	Date        time.Time
	Split       Split
	ID          string
	Description string
	PaidBy      string
	Category    Category
	Recurrence  Recurrence
	Amount      decimal.Decimal
	Recurring   bool
}

// FormattedDate returns Date in DateLayout.
func (e Expense) FormattedDate() string {
	return e.Date.Format(DateLayout)
}
