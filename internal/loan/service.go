package loan

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
	BalancesByProduct(ctx context.Context) (map[uuid.UUID]Balance, error)
}

type ListFilter struct {
	ProductID *uuid.UUID
	Status    *Status
	Borrower  *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	return s.repo.ListLoans(ctx, filter)
}

// BalancesByProduct aggregates outstanding quantities per product. The sale
// and repayment flows use it to decide whether a quantity is coverable and
// to block repayment entry for products with nothing outstanding.
func (s *Service) BalancesByProduct(ctx context.Context) (map[uuid.UUID]Balance, error) {
	return s.repo.BalancesByProduct(ctx)
}

// Outstanding returns the aggregated open balance for one product.
func (s *Service) Outstanding(ctx context.Context, productID uuid.UUID) (Balance, error) {
	status := StatusActive

	open, err := s.repo.ListLoans(ctx, ListFilter{ProductID: &productID, Status: &status})
	if err != nil {
		return Balance{}, err
	}

	var b Balance
	for _, l := range open {
		b.Boxes += l.OutstandingBoxes
		b.Sachets += l.OutstandingSachets
	}

	return b, nil
}
