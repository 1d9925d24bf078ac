package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSachetsPerBox is the pack size assumed when a product is created
// without an explicit one.
const DefaultSachetsPerBox = 28

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateName = errors.New("product name already exists")
	// ErrConfirmationMismatch is returned by the cascading delete when the
	// caller-supplied confirmation does not match the product name.
	ErrConfirmationMismatch = errors.New("confirmation does not match product name")
	ErrInvalidPackSize      = errors.New("sachets per box must be positive")
)

// Product holds a product's catalog attributes and its live inventory state.
// Stock is kept in two units: sealed boxes and loose sachets. The uuid is the
// stable identity everywhere; Name is a mutable display attribute and may be
// changed without rewriting transaction history.
type Product struct {
	ID            uuid.UUID
	Name          string
	StockBoxes    int
	StockSachets  int
	SachetsPerBox int

	// WeightedAverageCost is the blended acquisition cost per box,
	// recalculated on every purchase. Sales never change it.
	WeightedAverageCost decimal.Decimal
	ListPrice           decimal.Decimal
	RewardPoints        int

	// Version backs optimistic concurrency on ledger writes.
	Version   int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// StockUnits returns the on-hand stock expressed in fractional boxes, the
// basis used by the weighted-average cost blend.
func (p *Product) StockUnits() decimal.Decimal {
	loose := decimal.NewFromInt(int64(p.StockSachets)).
		Div(decimal.NewFromInt(int64(p.SachetsPerBox)))

	return decimal.NewFromInt(int64(p.StockBoxes)).Add(loose)
}
