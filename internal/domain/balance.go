package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartnerBalance is what one partner paid, owes and nets across a ledger.
type PartnerBalance struct {
	Partner string
	Paid    decimal.Decimal
	Owed    decimal.Decimal
	Net     decimal.Decimal
}

// Line renders the balance as "<name> paid: $X | owes: $Y".
func (p PartnerBalance) Line() string {
	return fmt.Sprintf("%s paid: %s | owes: %s", p.Partner, FormatMoney(p.Paid), FormatMoney(p.Owed))
}

// Settlement is the payment due between the partners. Amount is the
// difference between the two nets; Transfer is the single payment that
// zeroes both nets. From and To are empty when the partners are settled.
type Settlement struct {
	From     string
	To       string
	Amount   decimal.Decimal
	Transfer decimal.Decimal
}

// Settled reports whether no payment is due.
func (s Settlement) Settled() bool {
	return s.From == ""
}

// Balance is the result of running the balance engine over a ledger.
type Balance struct {
	Partner1   PartnerBalance
	Partner2   PartnerBalance
	Settlement Settlement
	Total      decimal.Decimal
}

// ComputeBalance totals what each partner paid and owes over expenses and
// derives the settlement. Every expense adds to both partners' owed totals
// regardless of who paid it.
func ComputeBalance(partner1, partner2 string, expenses []Expense) Balance {
	b := Balance{
		Partner1: PartnerBalance{Partner: partner1, Paid: decimal.Zero, Owed: decimal.Zero},
		Partner2: PartnerBalance{Partner: partner2, Paid: decimal.Zero, Owed: decimal.Zero},
		Total:    decimal.Zero,
	}

	for _, e := range expenses {
		b.Total = b.Total.Add(e.Amount)

		switch e.PaidBy {
		case partner1:
			b.Partner1.Paid = b.Partner1.Paid.Add(e.Amount)
		case partner2:
			b.Partner2.Paid = b.Partner2.Paid.Add(e.Amount)
		}

		b.Partner1.Owed = b.Partner1.Owed.Add(e.Split.AmountFor(partner1))
		b.Partner2.Owed = b.Partner2.Owed.Add(e.Split.AmountFor(partner2))
	}

	b.Partner1.Net = b.Partner1.Paid.Sub(b.Partner1.Owed)
	b.Partner2.Net = b.Partner2.Paid.Sub(b.Partner2.Owed)
	b.Settlement = settle(b.Partner1, b.Partner2)

	return b
}

func settle(p1, p2 PartnerBalance) Settlement {
	diff := p1.Net.Sub(p2.Net)
	if diff.Abs().LessThan(settleTolerance) {
		return Settlement{Amount: decimal.Zero, Transfer: decimal.Zero}
	}

	creditor, debtor := p1, p2
	if diff.IsNegative() {
		creditor, debtor = p2, p1
	}

	return Settlement{
		From:     debtor.Partner,
		To:       creditor.Partner,
		Amount:   RoundCents(diff.Abs()),
		Transfer: RoundCents(creditor.Net),
	}
}

// For returns the balance of the named partner.
func (b Balance) For(partner string) (PartnerBalance, bool) {
	switch partner {
	case b.Partner1.Partner:
		return b.Partner1, true
	case b.Partner2.Partner:
		return b.Partner2, true
	default:
		return PartnerBalance{}, false
	}
}

// SettlementFor returns the settlement amount from partner's point of view:
// positive when partner is owed, negative when partner owes.
func (b Balance) SettlementFor(partner string) decimal.Decimal {
	switch {
	case b.Settlement.Settled():
		return decimal.Zero
	case partner == b.Settlement.To:
		return b.Settlement.Amount
	case partner == b.Settlement.From:
		return b.Settlement.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Summary renders the settlement as "<debtor> owes <creditor> $X" or
// "All settled up!".
func (b Balance) Summary() string {
	if b.Settlement.Settled() {
		return "All settled up!"
	}
	return fmt.Sprintf("%s owes %s %s", b.Settlement.From, b.Settlement.To, FormatMoney(b.Settlement.Amount))
}
