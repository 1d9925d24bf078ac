package cycle

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
)

const topShareLimit = 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cycle
type Repository interface {
	// AppendCycle persists the cycle append-only and assigns the next
	// sequential number.
	AppendCycle(ctx context.Context, c *BusinessCycle) error
	GetCycle(ctx context.Context, id uuid.UUID) (*BusinessCycle, error)
	// LastCycle returns the most recently closed cycle, nil when none.
	LastCycle(ctx context.Context) (*BusinessCycle, error)
	ListCycles(ctx context.Context) ([]*BusinessCycle, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
}

type Service struct {
	repo       Repository
	ledgerSvc  *ledger.Service
	productSvc *product.Service
	loanSvc    *loan.Service
}

func NewService(repo Repository, ledgerSvc *ledger.Service, productSvc *product.Service, loanSvc *loan.Service) *Service {
	return &Service{
		repo:       repo,
		ledgerSvc:  ledgerSvc,
		productSvc: productSvc,
		loanSvc:    loanSvc,
	}
}

type CloseParams struct {
	Name string
	// StartDate defaults to the previous cycle's end date when zero, so
	// the open window always begins where the last close ended.
	StartDate time.Time
	EndDate   time.Time
	Notes     string
}

// Close freezes the period's aggregates into a new numbered cycle. The
// computation happens once, here; re-reading the cycle later returns the
// stored values regardless of any new transactions.
func (s *Service) Close(ctx context.Context, params CloseParams) (*BusinessCycle, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrEmptyName
	}

	prev, err := s.repo.LastCycle(ctx)
	if err != nil {
		return nil, err
	}

	start := params.StartDate
	if start.IsZero() && prev != nil {
		start = prev.EndDate
	}

	end := params.EndDate
	if end.IsZero() {
		end = time.Now()
	}

	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	txs, err := s.ledgerSvc.List(ctx, ledger.Filter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	products, err := s.productSvc.List(ctx)
	if err != nil {
		return nil, err
	}

	activeStatus := loan.StatusActive

	openLoans, err := s.loanSvc.List(ctx, loan.ListFilter{Status: &activeStatus})
	if err != nil {
		return nil, err
	}

	c := &BusinessCycle{
		Name:       params.Name,
		StartDate:  start,
		EndDate:    end,
		Notes:      params.Notes,
		Aggregates: aggregate(txs, products, openLoans),
	}

	if prev != nil {
		c.VsPrevious = deltas(c.Aggregates, prev.Aggregates)
	}

	if err := s.repo.AppendCycle(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*BusinessCycle, error) {
	return s.repo.GetCycle(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*BusinessCycle, error) {
	return s.repo.ListCycles(ctx)
}

// Annotate edits the free-text notes of a closed cycle, the only mutable
// field after closing.
func (s *Service) Annotate(ctx context.Context, id uuid.UUID, notes string) error {
	return s.repo.UpdateNotes(ctx, id, notes)
}

// LastClosedEnd implements report.WindowSource: the open window starts
// where the last closed cycle ended.
func (s *Service) LastClosedEnd(ctx context.Context) (*time.Time, error) {
	last, err := s.repo.LastCycle(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if last == nil {
		return nil, nil
	}

	end := last.EndDate

	return &end, nil
}

func aggregate(txs []*ledger.Transaction, products []*product.Product, openLoans []*loan.Loan) Aggregates {
	index := make(map[uuid.UUID]*product.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	profit := report.Aggregate(txs, index)

	agg := Aggregates{
		Revenue:        profit.Revenue,
		Purchases:      decimal.Zero,
		Advertising:    decimal.Zero,
		OtherOutflows:  decimal.Zero,
		COGS:           profit.COGS,
		SalesCount:     profit.SalesCount,
		UnmatchedSales: profit.UnmatchedSales,
	}

	perProduct := make(map[uuid.UUID]*ProductShare)
	perCampaign := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		switch tx.Kind {
		case ledger.KindSale:
			agg.BoxesSold += tx.QuantityBoxes
			agg.SachetsSold += tx.QuantitySachets

			share := perProduct[tx.ProductID]
			if share == nil {
				share = &ProductShare{
					ProductID:   tx.ProductID,
					ProductName: tx.ProductName,
					Revenue:     decimal.Zero,
				}
				perProduct[tx.ProductID] = share
			}

			share.Revenue = share.Revenue.Add(tx.TotalAmount)
			share.BoxesSold += tx.QuantityBoxes

		case ledger.KindPurchase:
			agg.Purchases = agg.Purchases.Add(tx.TotalAmount)

		case ledger.KindAdvertising:
			agg.Advertising = agg.Advertising.Add(tx.TotalAmount)

			tag := tx.CampaignTag
			if tag == "" {
				tag = "(untagged)"
			}

			spend, ok := perCampaign[tag]
			if !ok {
				spend = decimal.Zero
			}

			perCampaign[tag] = spend.Add(tx.TotalAmount)

		default:
			agg.OtherOutflows = agg.OtherOutflows.Add(tx.TotalAmount)
		}
	}

	agg.NetProfit = agg.Revenue.Sub(agg.COGS).Sub(agg.Advertising).Sub(agg.OtherOutflows)

	if agg.Revenue.IsPositive() {
		agg.Margin = agg.NetProfit.Div(agg.Revenue)
	} else {
		agg.Margin = decimal.Zero
	}

	invested := agg.Purchases.Add(agg.Advertising).Add(agg.OtherOutflows)
	if invested.IsPositive() {
		agg.ROI = agg.NetProfit.Div(invested)
	} else {
		agg.ROI = decimal.Zero
	}

	agg.TopProducts = topProducts(perProduct)
	agg.TopCampaigns = topCampaigns(perCampaign)

	for _, l := range openLoans {
		agg.Loans.ActiveLoans++
		agg.Loans.OutstandingBoxes += l.OutstandingBoxes
		agg.Loans.OutstandingSachets += l.OutstandingSachets
	}

	agg.Inventory = make([]InventoryLine, 0, len(products))
	for _, p := range products {
		agg.Inventory = append(agg.Inventory, InventoryLine{
			ProductID:           p.ID,
			ProductName:         p.Name,
			StockBoxes:          p.StockBoxes,
			StockSachets:        p.StockSachets,
			WeightedAverageCost: p.WeightedAverageCost,
		})
	}

	return agg
}

func topProducts(perProduct map[uuid.UUID]*ProductShare) []ProductShare {
	shares := make([]ProductShare, 0, len(perProduct))
	for _, s := range perProduct {
		shares = append(shares, *s)
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Revenue.Equal(shares[j].Revenue) {
			return shares[i].Revenue.GreaterThan(shares[j].Revenue)
		}

		return shares[i].ProductName < shares[j].ProductName
	})

	if len(shares) > topShareLimit {
		shares = shares[:topShareLimit]
	}

	return shares
}

func topCampaigns(perCampaign map[string]decimal.Decimal) []CampaignShare {
	shares := make([]CampaignShare, 0, len(perCampaign))
	for tag, spend := range perCampaign {
		shares = append(shares, CampaignShare{CampaignTag: tag, Spend: spend})
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Spend.Equal(shares[j].Spend) {
			return shares[i].Spend.GreaterThan(shares[j].Spend)
		}

		return shares[i].CampaignTag < shares[j].CampaignTag
	})

	if len(shares) > topShareLimit {
		shares = shares[:topShareLimit]
	}

	return shares
}

func deltas(curr, prev Aggregates) *Deltas {
	return &Deltas{
		Revenue:     percentChange(curr.Revenue, prev.Revenue),
		NetProfit:   percentChange(curr.NetProfit, prev.NetProfit),
		Advertising: percentChange(curr.Advertising, prev.Advertising),
	}
}

// percentChange returns (curr-prev)/prev*100, nil when prev is zero.
func percentChange(curr, prev decimal.Decimal) *decimal.Decimal {
	if prev.IsZero() {
		return nil
	}

	change := curr.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))

	return &change
}
