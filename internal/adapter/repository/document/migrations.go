package document

import "github.com/shopspring/decimal"

// migration upgrades a document from version i to i+1, where i is the
// migration's index in migrations.
type migration func(c *Codec, doc *rawDocument)

var migrations = []migration{
	defaultSplitRatio,
	assignExpenseIDs,
}

func (c *Codec) migrate(doc *rawDocument) error {
	if doc.Version < 0 || doc.Version > CurrentVersion {
		return malformed("unsupported version %d", doc.Version)
	}

	for doc.Version < CurrentVersion {
		migrations[doc.Version](c, doc)
		doc.Version++
	}
	return nil
}

// defaultSplitRatio gives documents written before split_ratio existed an
// even split.
func defaultSplitRatio(_ *Codec, doc *rawDocument) {
	if doc.SplitRatio == nil {
		half := decimal.RequireFromString("0.5")
		doc.SplitRatio = []number{{half}, {half}}
	}
}

// assignExpenseIDs gives every expense without an ID a fresh one.
func assignExpenseIDs(c *Codec, doc *rawDocument) {
	for i := range doc.Expenses {
		if doc.Expenses[i].ID == "" {
			doc.Expenses[i].ID = c.idGen.Generate()
		}
	}
}
