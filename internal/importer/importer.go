package importer

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
)

// Source identifies a supported export format.
type Source string

const (
	// SourceLegacy is the CSV export of the predecessor browser dashboard.
	SourceLegacy Source = "legacy"
)

// Row is one parsed transaction, still keyed by product name; resolution to
// a product id happens during replay.
type Row struct {
	ProductName     string
	Kind            ledger.Kind
	QuantityBoxes   int
	QuantitySachets int
	TotalAmount     decimal.Decimal
	GiftValue       *decimal.Decimal

	CampaignTag string
	Notes       string
	SaleOrigin  ledger.SaleOrigin
	CustomerRef string
	ReferrerRef string
	Borrower    string

	Date time.Time
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
