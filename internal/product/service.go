package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductByName(ctx context.Context, name string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdatePricing(ctx context.Context, id uuid.UUID, listPrice decimal.Decimal, rewardPoints int) error

	// DeleteCascade removes the product together with its full transaction
	// and loan history in one database transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string
	SachetsPerBox int
	ListPrice     decimal.Decimal
	RewardPoints  int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.SachetsPerBox == 0 {
		params.SachetsPerBox = DefaultSachetsPerBox
	}

	if params.SachetsPerBox < 0 {
		return nil, ErrInvalidPackSize
	}

	p := &Product{
		Name:                params.Name,
		SachetsPerBox:       params.SachetsPerBox,
		WeightedAverageCost: decimal.Zero,
		ListPrice:           params.ListPrice,
		RewardPoints:        params.RewardPoints,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Product, error) {
	return s.repo.GetProductByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

// Rename changes the display name only. Historical transactions keep the
// product id as their foreign key, so no history rewrite happens here.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	return s.repo.UpdateName(ctx, id, name)
}

func (s *Service) SetPricing(ctx context.Context, id uuid.UUID, listPrice decimal.Decimal, rewardPoints int) error {
	return s.repo.UpdatePricing(ctx, id, listPrice, rewardPoints)
}

// DeleteCascade permanently removes a product and every transaction and loan
// that references it. The caller must echo the exact product name back as a
// confirmation token; this is the only destructive operation in the ledger
// and it is irreversible.
func (s *Service) DeleteCascade(ctx context.Context, id uuid.UUID, confirmName string) error {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if p.Name != confirmName {
		return ErrConfirmationMismatch
	}

	return s.repo.DeleteCascade(ctx, id)
}
