package legacy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a legacy money cell. The old app never normalized
// number formats, so both "1.234,56" and "1,234.56" occur, optionally with
// a currency prefix. Empty cells mean zero.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "S/")
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return decimal.Zero, nil
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot && strings.Count(clean, ",") == 1:
		// Comma is the decimal separator; dots are thousands.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	default:
		// Dot-decimal or integer; commas are thousands.
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
