package domain

import "time"

// Event types
const (
	EventTypePartnersSet       = "partners.set"
	EventTypeSplitRatioUpdated = "split_ratio.updated"
	EventTypeExpenseAdded      = "expense.added"
	EventTypeLedgerReset       = "ledger.reset"
)

// Event is a change to the ledger announced after it has been saved.
type Event struct {
	OccurredAt time.Time
	Payload    any
	Type       string
}

// PartnersSetEvent payload
type PartnersSetEvent struct {
	Partner1 string `json:"partner1"`
	Partner2 string `json:"partner2"`
}

// SplitRatioUpdatedEvent payload
type SplitRatioUpdatedEvent struct {
	Partner1Share string `json:"partner1_share"`
	Partner2Share string `json:"partner2_share"`
}

// ExpenseAddedEvent payload
type ExpenseAddedEvent struct {
	ExpenseID   string            `json:"expense_id"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	PaidBy      string            `json:"paid_by"`
	Category    string            `json:"category"`
	Recurrence  string            `json:"recurrence"`
	Split       map[string]string `json:"split"`
	Date        string            `json:"date"`
}

// LedgerResetEvent payload
type LedgerResetEvent struct {
	ExpensesCleared int `json:"expenses_cleared"`
}

// NewExpenseAddedEvent builds the expense.added event for e.
func NewExpenseAddedEvent(e Expense, at time.Time) Event {
	return Event{
		Type:       EventTypeExpenseAdded,
		OccurredAt: at,
		Payload: ExpenseAddedEvent{
			ExpenseID:   e.ID,
			Amount:      e.Amount.StringFixed(CentPlaces),
			Description: e.Description,
			PaidBy:      e.PaidBy,
			Category:    string(e.Category),
			Recurrence:  string(e.Recurrence),
			Split: map[string]string{
				e.Split.Partner1.Partner: e.Split.Partner1.Amount.StringFixed(CentPlaces),
				e.Split.Partner2.Partner: e.Split.Partner2.Amount.StringFixed(CentPlaces),
			},
			Date: e.FormattedDate(),
		},
	}
}

// NewPartnersSetEvent builds the partners.set event.
func NewPartnersSetEvent(partner1, partner2 string, at time.Time) Event {
	return Event{
		Type:       EventTypePartnersSet,
		OccurredAt: at,
		Payload:    PartnersSetEvent{Partner1: partner1, Partner2: partner2},
	}
}

// NewSplitRatioUpdatedEvent builds the split_ratio.updated event.
func NewSplitRatioUpdatedEvent(ratio SplitRatio, at time.Time) Event {
	return Event{
		Type:       EventTypeSplitRatioUpdated,
		OccurredAt: at,
		Payload: SplitRatioUpdatedEvent{
			Partner1Share: ratio[0].String(),
			Partner2Share: ratio[1].String(),
		},
	}
}

// NewLedgerResetEvent builds the ledger.reset event.
func NewLedgerResetEvent(cleared int, at time.Time) Event {
	return Event{
		Type:       EventTypeLedgerReset,
		OccurredAt: at,
		Payload:    LedgerResetEvent{ExpensesCleared: cleared},
	}
}
