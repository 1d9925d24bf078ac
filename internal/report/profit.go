package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// Summary is an aggregated profit view over a set of sales.
//
// UnmatchedSales counts sales whose product no longer exists and that
// carried no cost snapshot; their revenue is included but they contribute
// zero COGS, so profit is overstated by that much. Callers should surface
// the count as a data-quality warning rather than hide it.
type Summary struct {
	Revenue decimal.Decimal
	COGS    decimal.Decimal
	Profit  decimal.Decimal
	Margin  decimal.Decimal

	SalesCount     int
	UnmatchedSales int
}

// COGSForSale attributes inventory cost to one sale. The cost snapshot taken
// at sale time wins when present; legacy rows without one fall back to the
// product's live weighted-average cost, which drifts under later purchases.
func COGSForSale(tx *ledger.Transaction, p *product.Product) decimal.Decimal {
	var unitCost decimal.Decimal

	var sachetsPerBox int

	switch {
	case tx.UnitCostAtEntry != nil:
		unitCost = *tx.UnitCostAtEntry
	case p != nil:
		unitCost = p.WeightedAverageCost
	default:
		return decimal.Zero
	}

	switch {
	case p != nil:
		sachetsPerBox = p.SachetsPerBox
	default:
		sachetsPerBox = product.DefaultSachetsPerBox
	}

	units := decimal.NewFromInt(int64(tx.QuantityBoxes)).
		Add(ledger.SachetsToBoxesExact(tx.QuantitySachets, sachetsPerBox))

	return units.Mul(unitCost)
}

// Aggregate folds sale transactions into a Summary. Non-sale kinds are
// ignored. products is keyed by product id.
func Aggregate(txs []*ledger.Transaction, products map[uuid.UUID]*product.Product) Summary {
	sum := Summary{
		Revenue: decimal.Zero,
		COGS:    decimal.Zero,
	}

	for _, tx := range txs {
		if tx.Kind != ledger.KindSale {
			continue
		}

		sum.SalesCount++
		sum.Revenue = sum.Revenue.Add(tx.TotalAmount)

		p := products[tx.ProductID]
		if p == nil && tx.UnitCostAtEntry == nil {
			sum.UnmatchedSales++
		}

		sum.COGS = sum.COGS.Add(COGSForSale(tx, p))
	}

	sum.Profit = sum.Revenue.Sub(sum.COGS)

	if sum.Revenue.IsPositive() {
		sum.Margin = sum.Profit.Div(sum.Revenue)
	} else {
		sum.Margin = decimal.Zero
	}

	return sum
}
