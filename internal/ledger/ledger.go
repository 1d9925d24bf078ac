package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the transaction type. Each kind has a deterministic effect on a
// product's stock and, for purchases, on its weighted-average cost.
type Kind string

const (
	KindPurchase            Kind = "purchase"
	KindSale                Kind = "sale"
	KindAdvertising         Kind = "advertising"
	KindPersonalConsumption Kind = "personal_consumption"
	KindMarketingSample     Kind = "marketing_sample"
	KindBoxOpening          Kind = "box_opening"
	KindLoan                Kind = "loan"
	KindLoanRepayment       Kind = "loan_repayment"
)

// SaleOrigin classifies where a sale came from. Reporting metadata only.
type SaleOrigin string

const (
	SaleOriginOrganic   SaleOrigin = "organic"
	SaleOriginRecurring SaleOrigin = "recurring"
	SaleOriginReferral  SaleOrigin = "referral"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	// ErrInsufficientStock is returned by decrementing kinds other than
	// sale; a sale never fails for stock, the shortfall becomes a loan.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNotAmendable guards the sole post-apply mutation: only an
	// advertising entry's final amount may be edited.
	ErrNotAmendable           = errors.New("only advertising amounts can be amended")
	ErrConcurrentModification = errors.New("concurrent modification of product")
)

// Transaction is an applied ledger entry. Once recorded it is immutable,
// with the single exception of the advertising amount amendment.
type Transaction struct {
	ID uuid.UUID

	// ProductID is the stable foreign key; ProductName is a display copy
	// taken at entry time and is not updated on product renames.
	ProductID   uuid.UUID
	ProductName string

	Kind            Kind
	QuantityBoxes   int
	QuantitySachets int

	// TotalAmount is the money exchanged: cost for purchases, revenue for
	// sales, spend for advertising. Zero for gifts, consumption,
	// box-opening and unvalued loans.
	TotalAmount decimal.Decimal

	// UnitCostAtEntry is the effective per-box cost for purchases, and the
	// weighted-average cost snapshot for sales. Nil on legacy rows and on
	// kinds with no cost relation.
	UnitCostAtEntry *decimal.Decimal

	// GiftValue is the declared value of free/bonus units on a purchase.
	GiftValue *decimal.Decimal

	CampaignTag string
	Notes       string
	SaleOrigin  SaleOrigin
	CustomerRef string
	ReferrerRef string
	Borrower    string

	Date      time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Filter narrows transaction reads.
type Filter struct {
	Kind      *Kind
	ProductID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
