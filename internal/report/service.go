package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// WindowSource tells the service where the current accounting window
// starts; in practice the cycle service, which knows the last closed
// cycle's end date.
type WindowSource interface {
	LastClosedEnd(ctx context.Context) (*time.Time, error)
}

type Service struct {
	ledgerSvc  *ledger.Service
	productSvc *product.Service
	windows    WindowSource
}

func NewService(ledgerSvc *ledger.Service, productSvc *product.Service, windows WindowSource) *Service {
	return &Service{
		ledgerSvc:  ledgerSvc,
		productSvc: productSvc,
		windows:    windows,
	}
}

// AggregateProfit computes revenue, COGS, profit and margin over the sales
// in the given range. Nil bounds leave that side open.
func (s *Service) AggregateProfit(ctx context.Context, start, end *time.Time) (*Summary, error) {
	txs, err := s.ledgerSvc.List(ctx, ledger.Filter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	products, err := s.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	sum := Aggregate(txs, products)

	return &sum, nil
}

// CurrentWindowSummary aggregates the open period: everything after the
// last closed cycle, or the full history when no cycle exists yet.
func (s *Service) CurrentWindowSummary(ctx context.Context) (*Summary, error) {
	start, err := s.windows.LastClosedEnd(ctx)
	if err != nil {
		return nil, err
	}

	return s.AggregateProfit(ctx, start, nil)
}

func (s *Service) productIndex(ctx context.Context) (map[uuid.UUID]*product.Product, error) {
	list, err := s.productSvc.List(ctx)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*product.Product, len(list))
	for _, p := range list {
		products[p.ID] = p
	}

	return products, nil
}
