package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Origin records how a loan came to exist.
type Origin string

const (
	// OriginOversale marks loans generated automatically when a sale
	// requested more stock than was on hand.
	OriginOversale Origin = "oversale"
	OriginManual   Origin = "manual"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrOverRepayment is returned when a repayment exceeds the product's
	// total outstanding balance.
	ErrOverRepayment = errors.New("repayment exceeds outstanding balance")
)

// Loan is a tracked debt of physical stock owed to a borrower. Each loan
// event is its own row, even for a repeated (product, borrower) pair, so the
// trail stays auditable. A loan is closed, never deleted, when its
// outstanding quantity reaches zero.
type Loan struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Borrower  string
	Origin    Origin
	Status    Status

	OutstandingBoxes   int
	OutstandingSachets int

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Balance is an aggregated outstanding quantity for display.
type Balance struct {
	Boxes   int
	Sachets int
}

func (b Balance) IsZero() bool {
	return b.Boxes == 0 && b.Sachets == 0
}
