// Package document converts between the persisted JSON ledger document and
// domain.Ledger. Every store shares it so all backends hold the same bytes.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
)

// CurrentVersion is the document version Encode writes.
const CurrentVersion = 2

// number is a decimal written as a bare JSON number. Decoding accepts both
// numbers and numeric strings.
type number struct {
	decimal.Decimal
}

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	return n.Decimal.UnmarshalJSON(b)
}

type rawDocument struct {
	Version    int          `json:"version"`
	Partner1   string       `json:"partner1"`
	Partner2   string       `json:"partner2"`
	Expenses   []rawExpense `json:"expenses"`
	SplitRatio []number     `json:"split_ratio"`
}

type rawExpense struct {
	ID          string            `json:"id,omitempty"`
	Amount      number            `json:"amount"`
	Description string            `json:"description"`
	PaidBy      string            `json:"paid_by"`
	Category    string            `json:"category"`
	Recurring   bool              `json:"recurring"`
	Recurrence  string            `json:"recurrence"`
	Date        string            `json:"date"`
	Split       map[string]number `json:"split"`
}

// Codec encodes and decodes ledger documents, migrating older versions on
// decode.
type Codec struct {
	idGen usecase.IDGenerator
}

// NewCodec creates a Codec. idGen assigns IDs to expenses stored before
// expenses had IDs.
func NewCodec(idGen usecase.IDGenerator) *Codec {
	return &Codec{idGen: idGen}
}

// Decode parses, migrates and validates a persisted document. Every failure
// wraps domain.ErrMalformedDocument.
func (c *Codec) Decode(data []byte) (*domain.Ledger, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed("parse json: %v", err)
	}

	if err := c.migrate(&doc); err != nil {
		return nil, err
	}

	return toLedger(&doc)
}

// Encode renders l as a current-version document, indented by two spaces
// and terminated by a newline.
func (c *Codec) Encode(l *domain.Ledger) ([]byte, error) {
	doc := rawDocument{
		Version:    CurrentVersion,
		Partner1:   l.Partner1,
		Partner2:   l.Partner2,
		Expenses:   make([]rawExpense, 0, len(l.Expenses)),
		SplitRatio: []number{{l.SplitRatio[0]}, {l.SplitRatio[1]}},
	}

	for _, e := range l.Expenses {
		doc.Expenses = append(doc.Expenses, rawExpense{
			ID:          e.ID,
			Amount:      number{e.Amount},
			Description: e.Description,
			PaidBy:      e.PaidBy,
			Category:    string(e.Category),
			Recurring:   e.Recurring,
			Recurrence:  string(e.Recurrence),
			Date:        e.FormattedDate(),
			Split: map[string]number{
				e.Split.Partner1.Partner: {e.Split.Partner1.Amount},
				e.Split.Partner2.Partner: {e.Split.Partner2.Amount},
			},
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ledger document: %w", err)
	}
	return append(data, '\n'), nil
}

func toLedger(doc *rawDocument) (*domain.Ledger, error) {
	if len(doc.SplitRatio) != 2 {
		return nil, malformed("split_ratio has %d entries", len(doc.SplitRatio))
	}
	ratio := domain.SplitRatio{doc.SplitRatio[0].Decimal, doc.SplitRatio[1].Decimal}
	if err := ratio.Validate(); err != nil {
		return nil, malformed("split_ratio %s/%s: %v", ratio[0], ratio[1], err)
	}

	hasP1, hasP2 := doc.Partner1 != "", doc.Partner2 != ""
	if hasP1 != hasP2 || (hasP1 && doc.Partner1 == doc.Partner2) {
		return nil, malformed("partners %q and %q", doc.Partner1, doc.Partner2)
	}

	ledger := &domain.Ledger{
		Partner1:   doc.Partner1,
		Partner2:   doc.Partner2,
		SplitRatio: ratio,
		Expenses:   make([]domain.Expense, 0, len(doc.Expenses)),
	}

	for i, raw := range doc.Expenses {
		e, err := toExpense(ledger, raw)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		ledger.Expenses = append(ledger.Expenses, e)
	}

	return ledger, nil
}

func toExpense(ledger *domain.Ledger, raw rawExpense) (domain.Expense, error) {
	if raw.ID == "" {
		return domain.Expense{}, malformed("missing id")
	}
	if !raw.Amount.IsPositive() {
		return domain.Expense{}, malformed("amount %s is not positive", raw.Amount)
	}
	if raw.Description == "" {
		return domain.Expense{}, malformed("empty description")
	}
	if !ledger.IsPartner(raw.PaidBy) {
		return domain.Expense{}, malformed("paid_by %q is not a partner", raw.PaidBy)
	}

	category := domain.Category(raw.Category)
	if !category.IsValid() {
		return domain.Expense{}, malformed("category %q", raw.Category)
	}
	recurrence := domain.Recurrence(raw.Recurrence)
	if err := domain.ValidateRecurrence(raw.Recurring, recurrence); err != nil {
		return domain.Expense{}, malformed("%v", err)
	}

	date, err := time.ParseInLocation(domain.DateLayout, raw.Date, time.Local)
	if err != nil {
		return domain.Expense{}, malformed("date %q", raw.Date)
	}

	p1, ok1 := raw.Split[ledger.Partner1]
	p2, ok2 := raw.Split[ledger.Partner2]
	if len(raw.Split) != 2 || !ok1 || !ok2 {
		return domain.Expense{}, malformed("split must be keyed by %q and %q", ledger.Partner1, ledger.Partner2)
	}
	split := domain.Split{
		Partner1: domain.Share{Partner: ledger.Partner1, Amount: p1.Decimal},
		Partner2: domain.Share{Partner: ledger.Partner2, Amount: p2.Decimal},
	}
	if err := split.Check(raw.Amount.Decimal); err != nil {
		return domain.Expense{}, malformed("%v", err)
	}

	return domain.Expense{
		ID:          raw.ID,
		Date:        date,
		Amount:      raw.Amount.Decimal,
		Description: raw.Description,
		PaidBy:      raw.PaidBy,
		Category:    category,
		Recurring:   raw.Recurring,
		Recurrence:  recurrence,
		Split:       split,
	}, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedDocument, fmt.Sprintf(format, args...))
}
