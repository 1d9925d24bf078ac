package ledger

import "github.com/shopspring/decimal"

// BoxesToSachets converts whole boxes into sachets for a pack size.
func BoxesToSachets(boxes, sachetsPerBox int) int {
	return boxes * sachetsPerBox
}

// SachetsToBoxesExact converts sachets into fractional boxes.
// Callers guarantee sachetsPerBox > 0.
func SachetsToBoxesExact(sachets, sachetsPerBox int) decimal.Decimal {
	return decimal.NewFromInt(int64(sachets)).
		Div(decimal.NewFromInt(int64(sachetsPerBox)))
}

// SachetsToBoxesCeil returns the smallest number of whole boxes covering the
// given sachets; used to decide how many sealed boxes must be opened.
func SachetsToBoxesCeil(sachets, sachetsPerBox int) int {
	if sachets <= 0 {
		return 0
	}

	return (sachets + sachetsPerBox - 1) / sachetsPerBox
}
