package document

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/splitnest/internal/domain"
)

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestCodec() *Codec {
	return NewCodec(&seqIDs{})
}

const legacyDocument = `{
  "partner1": "Ann",
  "partner2": "Bob",
  "expenses": [
    {
      "amount": 33.33,
      "description": "Pizza",
      "paid_by": "Ann",
      "category": "Food",
      "recurring": false,
      "recurrence": "None",
      "date": "2024-01-02 19:04:05",
      "split": {"Ann": 16.665, "Bob": 16.665}
    },
    {
      "amount": 60.0,
      "description": "Streaming",
      "paid_by": "Bob",
      "category": "Entertainment",
      "recurring": true,
      "recurrence": "Monthly",
      "date": "2024-01-03 08:00:00",
      "split": {"Ann": 30.0, "Bob": 30.0}
    }
  ]
}`

func TestDecode_LegacyDocumentMigrates(t *testing.T) {
	ledger, err := newTestCodec().Decode([]byte(legacyDocument))
	require.NoError(t, err)

	assert.Equal(t, "Ann", ledger.Partner1)
	assert.True(t, ledger.SplitRatio.Equal(domain.DefaultSplitRatio()))
	require.Len(t, ledger.Expenses, 2)
	assert.Equal(t, "id-1", ledger.Expenses[0].ID)
	assert.Equal(t, "id-2", ledger.Expenses[1].ID)
	assert.True(t, ledger.Expenses[0].Split.AmountFor("Bob").Equal(decimal.RequireFromString("16.665")))
	assert.Equal(t, domain.RecurrenceMonthly, ledger.Expenses[1].Recurrence)
	assert.Equal(t, "2024-01-03 08:00:00", ledger.Expenses[1].FormattedDate())
}

func TestDecode_ZeroDocumentWithoutRatio(t *testing.T) {
	ledger, err := newTestCodec().Decode([]byte(`{"partner1": "", "partner2": "", "expenses": []}`))
	require.NoError(t, err)

	assert.False(t, ledger.HasPartners())
	assert.Empty(t, ledger.Expenses)
	assert.True(t, ledger.SplitRatio.Equal(domain.DefaultSplitRatio()))
}

func TestDecode_KeepsExistingRatio(t *testing.T) {
	ledger, err := newTestCodec().Decode([]byte(`{"partner1": "", "partner2": "", "expenses": [], "split_ratio": [0.7, 0.3]}`))
	require.NoError(t, err)

	assert.Equal(t, 70, ledger.SplitRatio.Partner1Percent())
}

func TestDecode_AcceptsNumericStrings(t *testing.T) {
	doc := `{"version": 2, "partner1": "a", "partner2": "b", "split_ratio": ["0.5", "0.5"], "expenses": [
	  {"id": "x", "amount": "10.00", "description": "d", "paid_by": "b", "category": "Other",
	   "recurring": false, "recurrence": "None", "date": "2024-02-02 02:02:02", "split": {"a": "5", "b": "5.00"}}]}`

	ledger, err := newTestCodec().Decode([]byte(doc))
	require.NoError(t, err)
	assert.True(t, ledger.Expenses[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestEncode_RoundTripIsIdempotent(t *testing.T) {
	codec := newTestCodec()

	for name, input := range map[string]string{
		"legacy": legacyDocument,
		"empty":  `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			ledger, err := codec.Decode([]byte(input))
			require.NoError(t, err)

			first, err := codec.Encode(ledger)
			require.NoError(t, err)

			reloaded, err := codec.Decode(first)
			require.NoError(t, err)

			second, err := codec.Encode(reloaded)
			require.NoError(t, err)

			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	ledger := domain.NewLedger()
	require.NoError(t, ledger.SetPartners("p1", "p2"))

	data, err := newTestCodec().Encode(ledger)
	require.NoError(t, err)

	want := "{\n" +
		"  \"version\": 2,\n" +
		"  \"partner1\": \"p1\",\n" +
		"  \"partner2\": \"p2\",\n" +
		"  \"expenses\": [],\n" +
		"  \"split_ratio\": [\n" +
		"    0.5,\n" +
		"    0.5\n" +
		"  ]\n" +
		"}\n"
	assert.Equal(t, want, string(data))
}

func TestDecode_Malformed(t *testing.T) {
	expense := func(overrides string) string {
		base := map[string]string{
			"id":          `"x"`,
			"amount":      `10`,
			"description": `"d"`,
			"paid_by":     `"a"`,
			"category":    `"Food"`,
			"recurring":   `false`,
			"recurrence":  `"None"`,
			"date":        `"2024-02-02 02:02:02"`,
			"split":       `{"a": 5, "b": 5}`,
		}
		for _, kv := range strings.Split(overrides, ";") {
			if kv == "" {
				continue
			}
			parts := strings.SplitN(kv, "=", 2)
			base[parts[0]] = parts[1]
		}
		fields := make([]string, 0, len(base))
		for k, v := range base {
			fields = append(fields, fmt.Sprintf("%q: %s", k, v))
		}
		return `{"version": 2, "partner1": "a", "partner2": "b", "split_ratio": [0.5, 0.5], "expenses": [{` +
			strings.Join(fields, ", ") + `}]}`
	}

	tests := map[string]string{
		"not json":             `{"partner1": `,
		"empty input":          ``,
		"future version":       `{"version": 3, "partner1": "", "partner2": "", "expenses": [], "split_ratio": [0.5, 0.5]}`,
		"negative version":     `{"version": -1}`,
		"ratio over one":       `{"partner1": "", "partner2": "", "expenses": [], "split_ratio": [0.7, 0.5]}`,
		"ratio wrong length":   `{"partner1": "", "partner2": "", "expenses": [], "split_ratio": [1]}`,
		"ratio missing in v2":  `{"version": 2, "partner1": "", "partner2": "", "expenses": []}`,
		"one partner only":     `{"partner1": "a", "partner2": "", "expenses": []}`,
		"same partners":        `{"partner1": "a", "partner2": "a", "expenses": []}`,
		"missing id in v2":     expense(`id=""`),
		"zero amount":          expense(`amount=0;split={"a": 0, "b": 0}`),
		"empty description":    expense(`description=""`),
		"unknown payer":        expense(`paid_by="c"`),
		"unknown category":     expense(`category="Travel"`),
		"recurrence mismatch":  expense(`recurring=true`),
		"unknown recurrence":   expense(`recurring=true;recurrence="Daily"`),
		"bad date":             expense(`date="02/02/2024"`),
		"split wrong keys":     expense(`split={"a": 5, "c": 5}`),
		"split extra key":      expense(`split={"a": 5, "b": 5, "c": 0}`),
		"split does not sum":   expense(`split={"a": 5, "b": 4.98}`),
		"amount not a number":  expense(`amount="ten"`),
	}

	codec := newTestCodec()

	_, err := codec.Decode([]byte(expense("")))
	require.NoError(t, err, "control document must decode")

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode([]byte(doc))
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
		})
	}
}
