package cycle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClose_EmptyName(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	_, err := svc.Close(context.Background(), CloseParams{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestClose_InvalidDateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	repo.EXPECT().LastCycle(gomock.Any()).Return(nil, nil)

	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Close(context.Background(), CloseParams{
		Name:      "C1",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestClose_FreezesAggregatesAndDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := &product.Product{
		ID:                  uuid.New(),
		Name:                "Prunex 1",
		StockBoxes:          4,
		SachetsPerBox:       28,
		WeightedAverageCost: dec("90"),
	}

	prevEnd := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	prev := &BusinessCycle{
		Number:  1,
		EndDate: prevEnd,
		Aggregates: Aggregates{
			Revenue:     dec("200"),
			NetProfit:   dec("50"),
			Advertising: decimal.Zero,
		},
	}

	snapshot := dec("90")
	txs := []*ledger.Transaction{
		{Kind: ledger.KindSale, ProductID: p.ID, ProductName: p.Name, QuantityBoxes: 2, TotalAmount: dec("270"), UnitCostAtEntry: &snapshot, CampaignTag: "agosto"},
		{Kind: ledger.KindPurchase, ProductID: p.ID, QuantityBoxes: 6, TotalAmount: dec("540")},
		{Kind: ledger.KindAdvertising, TotalAmount: dec("40"), CampaignTag: "agosto"},
	}

	repo := NewMockRepository(ctrl)
	repo.EXPECT().LastCycle(gomock.Any()).Return(prev, nil)
	repo.EXPECT().AppendCycle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *BusinessCycle) error {
			c.ID = uuid.New()
			c.Number = 2
			c.ClosedAt = time.Now()
			return nil
		})

	ledgerRepo := ledger.NewMockRepository(ctrl)
	ledgerRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(txs, nil)

	productRepo := product.NewMockRepository(ctrl)
	productRepo.EXPECT().ListProducts(gomock.Any()).Return([]*product.Product{p}, nil)

	loanRepo := loan.NewMockRepository(ctrl)
	loanRepo.EXPECT().ListLoans(gomock.Any(), gomock.Any()).
		Return([]*loan.Loan{{Status: loan.StatusActive, OutstandingBoxes: 1}}, nil)

	svc := NewService(repo,
		ledger.NewService(ledgerRepo),
		product.NewService(productRepo),
		loan.NewService(loanRepo),
	)

	c, err := svc.Close(context.Background(), CloseParams{
		Name:    "C2026-08",
		EndDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// The window starts where the previous cycle ended.
	assert.Equal(t, prevEnd, c.StartDate)
	assert.Equal(t, 2, c.Number)

	agg := c.Aggregates
	assert.True(t, agg.Revenue.Equal(dec("270")), "revenue %s", agg.Revenue)
	assert.True(t, agg.COGS.Equal(dec("180")), "cogs %s", agg.COGS)
	assert.True(t, agg.Purchases.Equal(dec("540")))
	assert.True(t, agg.Advertising.Equal(dec("40")))
	// 270 - 180 - 40.
	assert.True(t, agg.NetProfit.Equal(dec("50")), "net profit %s", agg.NetProfit)
	assert.Equal(t, 2, agg.BoxesSold)
	assert.Equal(t, 1, agg.SalesCount)
	assert.Equal(t, 1, agg.Loans.ActiveLoans)
	assert.Equal(t, 1, agg.Loans.OutstandingBoxes)

	require.Len(t, agg.TopProducts, 1)
	assert.Equal(t, "Prunex 1", agg.TopProducts[0].ProductName)
	require.Len(t, agg.TopCampaigns, 1)
	assert.Equal(t, "agosto", agg.TopCampaigns[0].CampaignTag)

	require.Len(t, agg.Inventory, 1)
	assert.Equal(t, 4, agg.Inventory[0].StockBoxes)

	require.NotNil(t, c.VsPrevious)
	require.NotNil(t, c.VsPrevious.Revenue)
	assert.True(t, c.VsPrevious.Revenue.Equal(dec("35")), "revenue delta %s", c.VsPrevious.Revenue)
	require.NotNil(t, c.VsPrevious.NetProfit)
	assert.True(t, c.VsPrevious.NetProfit.Equal(dec("0")))
	// Previous advertising was zero, so no percentage is meaningful.
	assert.Nil(t, c.VsPrevious.Advertising)
}

func TestClose_FirstCycleHasNoDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	repo.EXPECT().LastCycle(gomock.Any()).Return(nil, nil)
	repo.EXPECT().AppendCycle(gomock.Any(), gomock.Any()).Return(nil)

	ledgerRepo := ledger.NewMockRepository(ctrl)
	ledgerRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

	productRepo := product.NewMockRepository(ctrl)
	productRepo.EXPECT().ListProducts(gomock.Any()).Return(nil, nil)

	loanRepo := loan.NewMockRepository(ctrl)
	loanRepo.EXPECT().ListLoans(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := NewService(repo,
		ledger.NewService(ledgerRepo),
		product.NewService(productRepo),
		loan.NewService(loanRepo),
	)

	c, err := svc.Close(context.Background(), CloseParams{Name: "C1"})
	require.NoError(t, err)
	assert.Nil(t, c.VsPrevious)
}

func TestPercentChange(t *testing.T) {
	assert.Nil(t, percentChange(dec("10"), decimal.Zero))

	got := percentChange(dec("150"), dec("100"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("50")))

	got = percentChange(dec("50"), dec("100"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("-50")))
}

func TestTopProducts_SortedAndCapped(t *testing.T) {
	perProduct := map[uuid.UUID]*ProductShare{}
	for i := 0; i < 7; i++ {
		id := uuid.New()
		perProduct[id] = &ProductShare{
			ProductID:   id,
			ProductName: string(rune('A' + i)),
			Revenue:     decimal.NewFromInt(int64(i * 10)),
		}
	}

	shares := topProducts(perProduct)

	require.Len(t, shares, topShareLimit)
	assert.Equal(t, "G", shares[0].ProductName)
	assert.True(t, shares[0].Revenue.GreaterThanOrEqual(shares[1].Revenue))
}
