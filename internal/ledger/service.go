package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// maxRetries bounds the internal retry on optimistic-version conflicts
// before ErrConcurrentModification is surfaced to the caller.
const maxRetries = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	Begin(ctx context.Context) (Tx, error)
}

// Tx spans every row a single ledger command may touch: the product's stock
// and cost, the appended transaction, and loan rows. Either all of it
// commits or none of it does.
type Tx interface {
	ProductForUpdate(ctx context.Context, id uuid.UUID) (*product.Product, error)
	// SaveProduct persists stock/cost changes with an optimistic version
	// check; it returns ErrConcurrentModification when the row moved.
	SaveProduct(ctx context.Context, p *product.Product) error
	AppendTransaction(ctx context.Context, tx *Transaction) error

	CreateLoan(ctx context.Context, l *loan.Loan) error
	// OpenLoans returns the product's active loans oldest-first. An empty
	// borrower matches all borrowers.
	OpenLoans(ctx context.Context, productID uuid.UUID, borrower string) ([]*loan.Loan, error)
	UpdateLoan(ctx context.Context, l *loan.Loan) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RecordParams struct {
	ProductID       uuid.UUID
	Kind            Kind
	QuantityBoxes   int
	QuantitySachets int
	TotalAmount     decimal.Decimal
	GiftValue       *decimal.Decimal

	CampaignTag string
	Notes       string
	SaleOrigin  SaleOrigin
	CustomerRef string
	ReferrerRef string
	Borrower    string

	Date time.Time
}

// Result reports everything a single command changed, so the caller sees a
// sale and its generated loan as one outcome.
type Result struct {
	Transaction *Transaction
	Product     *product.Product

	// LoanCreated is set when an oversold sale or an explicit loan-out
	// created a debt.
	LoanCreated *loan.Loan
	// SettledLoans are the rows a repayment reduced, oldest first.
	SettledLoans []*loan.Loan
}

func validateParams(params RecordParams) error {
	if params.QuantityBoxes < 0 || params.QuantitySachets < 0 {
		return ErrInvalidQuantity
	}

	if params.TotalAmount.IsNegative() {
		return ErrInvalidAmount
	}

	if params.GiftValue != nil && params.GiftValue.IsNegative() {
		return ErrInvalidAmount
	}

	total := params.QuantityBoxes + params.QuantitySachets

	switch params.Kind {
	case KindAdvertising:
		if total != 0 {
			return ErrInvalidQuantity
		}
	case KindBoxOpening:
		if params.QuantityBoxes == 0 || params.QuantitySachets != 0 {
			return ErrInvalidQuantity
		}
	case KindPurchase, KindSale, KindPersonalConsumption, KindMarketingSample, KindLoan, KindLoanRepayment:
		if total == 0 {
			return ErrInvalidQuantity
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", params.Kind)
	}

	return nil
}

// Record validates and atomically applies one transaction: stock transform,
// cost update and loan bookkeeping commit together or not at all. Version
// conflicts on the product row retry the whole command a bounded number of
// times.
func (s *Service) Record(ctx context.Context, params RecordParams) (*Result, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var (
		res *Result
		err error
	)

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err = s.record(ctx, params)
		if !errors.Is(err, ErrConcurrentModification) {
			break
		}
	}

	return res, err
}

func (s *Service) record(ctx context.Context, params RecordParams) (*Result, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.ProductForUpdate(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	entry := &Transaction{
		ProductID:       p.ID,
		ProductName:     p.Name,
		Kind:            params.Kind,
		QuantityBoxes:   params.QuantityBoxes,
		QuantitySachets: params.QuantitySachets,
		TotalAmount:     params.TotalAmount,
		GiftValue:       params.GiftValue,
		CampaignTag:     params.CampaignTag,
		Notes:           params.Notes,
		SaleOrigin:      params.SaleOrigin,
		CustomerRef:     params.CustomerRef,
		ReferrerRef:     params.ReferrerRef,
		Borrower:        params.Borrower,
		Date:            params.Date,
	}

	res := &Result{Transaction: entry, Product: p}

	switch params.Kind {
	case KindPurchase:
		unitCost := purchaseUnitCost(params.QuantityBoxes, params.QuantitySachets, params.TotalAmount, p.SachetsPerBox)
		entry.UnitCostAtEntry = &unitCost

		applyPurchase(p, params)

	case KindSale:
		// Snapshot the cost basis before anything else so historical
		// profit stays stable under later cost corrections.
		snapshot := p.WeightedAverageCost
		entry.UnitCostAtEntry = &snapshot

		shortBoxes, shortSachets := drawStock(p, params.QuantityBoxes, params.QuantitySachets)
		if shortBoxes > 0 || shortSachets > 0 {
			res.LoanCreated = &loan.Loan{
				ProductID:          p.ID,
				Borrower:           oversaleBorrower(params),
				Origin:             loan.OriginOversale,
				Status:             loan.StatusActive,
				OutstandingBoxes:   shortBoxes,
				OutstandingSachets: shortSachets,
			}
		}

	case KindAdvertising:
		// No inventory relation.

	case KindPersonalConsumption, KindMarketingSample:
		if err := applyStrictDecrement(p, params.QuantityBoxes, params.QuantitySachets); err != nil {
			return nil, err
		}

	case KindBoxOpening:
		if err := applyBoxOpening(p, params.QuantityBoxes); err != nil {
			return nil, err
		}

	case KindLoan:
		if err := applyStrictDecrement(p, params.QuantityBoxes, params.QuantitySachets); err != nil {
			return nil, err
		}

		res.LoanCreated = &loan.Loan{
			ProductID:          p.ID,
			Borrower:           params.Borrower,
			Origin:             loan.OriginManual,
			Status:             loan.StatusActive,
			OutstandingBoxes:   params.QuantityBoxes,
			OutstandingSachets: params.QuantitySachets,
		}

	case KindLoanRepayment:
		open, err := tx.OpenLoans(ctx, p.ID, params.Borrower)
		if err != nil {
			return nil, err
		}

		settled, err := loan.Settle(open, params.QuantityBoxes, params.QuantitySachets)
		if err != nil {
			return nil, err
		}

		// Goods physically return to stock.
		p.StockBoxes += params.QuantityBoxes
		p.StockSachets += params.QuantitySachets

		for _, l := range settled {
			if err := tx.UpdateLoan(ctx, l); err != nil {
				return nil, err
			}
		}

		res.SettledLoans = settled
	}

	if err := tx.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	if err := tx.AppendTransaction(ctx, entry); err != nil {
		return nil, err
	}

	if res.LoanCreated != nil {
		if err := tx.CreateLoan(ctx, res.LoanCreated); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}

	return res, nil
}

// oversaleBorrower labels the auto-generated loan: the customer when known,
// a fixed marker otherwise.
func oversaleBorrower(params RecordParams) string {
	if params.CustomerRef != "" {
		return params.CustomerRef
	}

	return "generated by oversale"
}

// AmendAmount edits an applied entry's final amount. Allowed for
// advertising only (tax and fee corrections); every other kind is immutable.
func (s *Service) AmendAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	entry, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Kind != KindAdvertising {
		return nil, ErrNotAmendable
	}

	if err := s.repo.UpdateAmount(ctx, id, amount); err != nil {
		return nil, err
	}

	entry.TotalAmount = amount

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}
