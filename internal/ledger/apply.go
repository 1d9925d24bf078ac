package ledger

import (
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// hasStock reports whether a decrement of boxes and sachets is coverable:
// the boxes portion must fit in sealed stock, and any sachet shortfall must
// be coverable by opening boxes that remain after reserving that portion.
func hasStock(p *product.Product, boxes, sachets int) bool {
	if boxes > p.StockBoxes {
		return false
	}

	short := sachets - p.StockSachets
	if short <= 0 {
		return true
	}

	return SachetsToBoxesCeil(short, p.SachetsPerBox) <= p.StockBoxes-boxes
}

// drawStock removes boxes and sachets from the product, opening sealed boxes
// as needed to cover a sachet shortfall. Stock never goes negative; whatever
// could not be served is returned as the shortfall.
//
// Boxes are served before sachets, so a sale's requested boxes are never
// consumed by opening.
func drawStock(p *product.Product, boxes, sachets int) (shortBoxes, shortSachets int) {
	served := min(boxes, p.StockBoxes)
	p.StockBoxes -= served
	shortBoxes = boxes - served

	if sachets <= p.StockSachets {
		p.StockSachets -= sachets
		return shortBoxes, 0
	}

	open := min(SachetsToBoxesCeil(sachets-p.StockSachets, p.SachetsPerBox), p.StockBoxes)
	p.StockBoxes -= open
	p.StockSachets += BoxesToSachets(open, p.SachetsPerBox)

	if sachets <= p.StockSachets {
		p.StockSachets -= sachets
		return shortBoxes, 0
	}

	shortSachets = sachets - p.StockSachets
	p.StockSachets = 0

	return shortBoxes, shortSachets
}

// applyPurchase updates the weighted-average cost from the pre-purchase
// stock basis, then increments stock.
func applyPurchase(p *product.Product, params RecordParams) {
	p.WeightedAverageCost = blendAverageCost(
		p.StockUnits(), p.WeightedAverageCost,
		params.QuantityBoxes, params.QuantitySachets,
		params.TotalAmount, p.SachetsPerBox,
	)

	p.StockBoxes += params.QuantityBoxes
	p.StockSachets += params.QuantitySachets
}

// applyBoxOpening converts sealed boxes into loose sachets. Irreversible.
func applyBoxOpening(p *product.Product, boxes int) error {
	if boxes > p.StockBoxes {
		return ErrInsufficientStock
	}

	p.StockBoxes -= boxes
	p.StockSachets += BoxesToSachets(boxes, p.SachetsPerBox)

	return nil
}

// applyStrictDecrement serves consumption, samples and manual loan-outs,
// which fail instead of overdrawing.
func applyStrictDecrement(p *product.Product, boxes, sachets int) error {
	if !hasStock(p, boxes, sachets) {
		return ErrInsufficientStock
	}

	drawStock(p, boxes, sachets)

	return nil
}
