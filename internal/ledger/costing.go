package ledger

import "github.com/shopspring/decimal"

// blendAverageCost returns the new weighted-average per-box cost after a
// purchase. oldUnits is the pre-purchase stock in fractional boxes.
//
// The blend is stock-weighted:
//
//	(oldUnits*oldAvg + totalCost) / (oldUnits + acquired)
//
// A zero-cost purchase still adds units and therefore dilutes the average
// toward zero: free stock lowers the average and raises later margins.
func blendAverageCost(oldUnits, oldAvg decimal.Decimal, qtyBoxes, qtySachets int, totalCost decimal.Decimal, sachetsPerBox int) decimal.Decimal {
	acquired := decimal.NewFromInt(int64(qtyBoxes)).
		Add(SachetsToBoxesExact(qtySachets, sachetsPerBox))

	// Zero-quantity purchases are rejected upstream; keep the cost
	// unchanged if one slips through.
	if acquired.IsZero() {
		return oldAvg
	}

	return oldUnits.Mul(oldAvg).Add(totalCost).Div(oldUnits.Add(acquired))
}

// purchaseUnitCost is the effective per-box cost of a purchase, snapshotted
// on the transaction as UnitCostAtEntry.
func purchaseUnitCost(qtyBoxes, qtySachets int, totalCost decimal.Decimal, sachetsPerBox int) decimal.Decimal {
	acquired := decimal.NewFromInt(int64(qtyBoxes)).
		Add(SachetsToBoxesExact(qtySachets, sachetsPerBox))
	if acquired.IsZero() {
		return decimal.Zero
	}

	return totalCost.Div(acquired)
}
