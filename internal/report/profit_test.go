package report_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCOGSForSale(t *testing.T) {
	p := &product.Product{
		ID:                  uuid.New(),
		SachetsPerBox:       28,
		WeightedAverageCost: dec("100"),
	}

	t.Run("SnapshotWins", func(t *testing.T) {
		snapshot := dec("90")
		tx := &ledger.Transaction{
			QuantityBoxes:   2,
			UnitCostAtEntry: &snapshot,
		}

		got := report.COGSForSale(tx, p)
		assert.True(t, got.Equal(dec("180")), "got %s", got)
	})

	t.Run("FallsBackToLiveAverage", func(t *testing.T) {
		tx := &ledger.Transaction{QuantityBoxes: 1, QuantitySachets: 14}

		// 1.5 boxes at the live average of 100.
		got := report.COGSForSale(tx, p)
		assert.True(t, got.Equal(dec("150")), "got %s", got)
	})

	t.Run("NoProductNoSnapshot", func(t *testing.T) {
		tx := &ledger.Transaction{QuantityBoxes: 3}

		assert.True(t, report.COGSForSale(tx, nil).IsZero())
	})

	t.Run("SnapshotWithoutProductUsesDefaultPackSize", func(t *testing.T) {
		snapshot := dec("280")
		tx := &ledger.Transaction{QuantitySachets: 14, UnitCostAtEntry: &snapshot}

		got := report.COGSForSale(tx, nil)
		assert.True(t, got.Equal(dec("140")), "got %s", got)
	})
}

func TestAggregate(t *testing.T) {
	p := &product.Product{
		ID:                  uuid.New(),
		SachetsPerBox:       28,
		WeightedAverageCost: dec("100"),
	}
	products := map[uuid.UUID]*product.Product{p.ID: p}

	snapshot := dec("90")
	orphan := uuid.New()

	txs := []*ledger.Transaction{
		{Kind: ledger.KindSale, ProductID: p.ID, QuantityBoxes: 2, TotalAmount: dec("270"), UnitCostAtEntry: &snapshot},
		{Kind: ledger.KindSale, ProductID: p.ID, QuantityBoxes: 1, TotalAmount: dec("135")},
		// Deleted product, no snapshot: revenue counts, COGS is zero.
		{Kind: ledger.KindSale, ProductID: orphan, QuantityBoxes: 1, TotalAmount: dec("95")},
		// Non-sale kinds are ignored entirely.
		{Kind: ledger.KindPurchase, ProductID: p.ID, QuantityBoxes: 10, TotalAmount: dec("1000")},
		{Kind: ledger.KindAdvertising, TotalAmount: dec("50")},
	}

	sum := report.Aggregate(txs, products)

	assert.Equal(t, 3, sum.SalesCount)
	assert.Equal(t, 1, sum.UnmatchedSales)
	assert.True(t, sum.Revenue.Equal(dec("500")), "revenue %s", sum.Revenue)
	// 2*90 + 1*100 + 0.
	assert.True(t, sum.COGS.Equal(dec("280")), "cogs %s", sum.COGS)
	assert.True(t, sum.Profit.Equal(dec("220")), "profit %s", sum.Profit)
	assert.True(t, sum.Margin.Equal(dec("0.44")), "margin %s", sum.Margin)
}

func TestAggregate_Empty(t *testing.T) {
	sum := report.Aggregate(nil, nil)

	assert.Zero(t, sum.SalesCount)
	assert.True(t, sum.Revenue.IsZero())
	assert.True(t, sum.Margin.IsZero())
}
