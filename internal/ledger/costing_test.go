package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBlendAverageCost(t *testing.T) {
	type testCase struct {
		name      string
		oldUnits  string
		oldAvg    string
		qtyBoxes  int
		qtySach   int
		totalCost string
		want      string
	}

	tests := []testCase{
		{
			name:     "FirstPurchase",
			oldUnits: "0", oldAvg: "0",
			qtyBoxes: 10, totalCost: "100000",
			want: "10000",
		},
		{
			name:     "FreeStockDilutesAverage",
			oldUnits: "5", oldAvg: "8000",
			qtyBoxes: 5, totalCost: "0",
			want: "4000",
		},
		{
			name:     "MixedCostBlend",
			oldUnits: "10", oldAvg: "100",
			qtyBoxes: 10, totalCost: "2000",
			want: "150",
		},
		{
			name:     "SachetsCountAsFractionalBoxes",
			oldUnits: "0", oldAvg: "0",
			qtyBoxes: 1, qtySach: 14, totalCost: "300",
			want: "200",
		},
		{
			name:     "ZeroQuantityKeepsAverage",
			oldUnits: "4", oldAvg: "250",
			totalCost: "999",
			want:      "250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blendAverageCost(
				decimal.RequireFromString(tt.oldUnits),
				decimal.RequireFromString(tt.oldAvg),
				tt.qtyBoxes, tt.qtySach,
				decimal.RequireFromString(tt.totalCost),
				28,
			)

			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestPurchaseUnitCost(t *testing.T) {
	got := purchaseUnitCost(10, 0, decimal.RequireFromString("100000"), 28)
	assert.True(t, got.Equal(decimal.RequireFromString("10000")))

	got = purchaseUnitCost(0, 14, decimal.RequireFromString("50"), 28)
	assert.True(t, got.Equal(decimal.RequireFromString("100")))

	assert.True(t, purchaseUnitCost(0, 0, decimal.RequireFromString("100"), 28).IsZero())
}
