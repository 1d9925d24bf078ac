package legacy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/daniel1743/claculadorafuxion-sub001/internal/encoding"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
)

// Parser reads legacy dashboard CSV exports and produces importer rows. It
// auto-detects which export variant is being read by matching column
// headers against known profiles.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]importer.Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	// Excel saves use semicolons, Sheets exports use commas; try both
	// before giving up on header detection.
	for _, comma := range []rune{';', ','} {
		rows, err := readCSV(data, comma)
		if err != nil {
			continue
		}

		if profile, colMap, headerIdx := detectProfile(rows); profile != nil {
			return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
		}
	}

	return nil, fmt.Errorf("no matching export format: expected the movimientos or simple column set")
}

func readCSV(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]importer.Row, error) {
	var out []importer.Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based, past the header

		date, ok := parseDate(cellValue(row, cols, p.DateCol))
		if !ok {
			// Legacy exports end with summary lines; stop at the first
			// row without a date.
			continue
		}

		kind, ok := parseKind(cellValue(row, cols, p.KindCol))
		if !ok {
			return nil, fmt.Errorf("row %d: unknown transaction type %q", rowNum, cellValue(row, cols, p.KindCol))
		}

		boxes, err := parseQuantity(cellValue(row, cols, p.BoxesCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: boxes: %w", rowNum, err)
		}

		sachets, err := parseQuantity(cellValue(row, cols, p.SachetsCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: sachets: %w", rowNum, err)
		}

		amount, err := parseAmount(cellValue(row, cols, p.AmountCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: amount: %w", rowNum, err)
		}

		item := importer.Row{
			ProductName:     cellValue(row, cols, p.ProductCol),
			Kind:            kind,
			QuantityBoxes:   boxes,
			QuantitySachets: sachets,
			TotalAmount:     amount,
			CampaignTag:     cellValue(row, cols, p.CampaignCol),
			Notes:           cellValue(row, cols, p.NotesCol),
			SaleOrigin:      parseOrigin(cellValue(row, cols, p.OriginCol)),
			CustomerRef:     cellValue(row, cols, p.CustomerCol),
			ReferrerRef:     cellValue(row, cols, p.ReferrerCol),
			Borrower:        cellValue(row, cols, p.BorrowerCol),
			Date:            date,
		}

		if gv := cellValue(row, cols, p.GiftValueCol); gv != "" {
			value, err := parseAmount(gv)
			if err != nil {
				return nil, fmt.Errorf("row %d: gift value: %w", rowNum, err)
			}

			if !value.IsZero() {
				item.GiftValue = &value
			}
		}

		out = append(out, item)
	}

	return out, nil
}

// cellValue returns the trimmed cell for a named column, empty when the
// profile lacks the column or the row is short.
func cellValue(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"02-01-2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}

	return n, nil
}

// accentFold strips the accents the legacy labels carry inconsistently.
var accentFold = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")

var kindLabels = map[string]ledger.Kind{
	"compra":            ledger.KindPurchase,
	"venta":             ledger.KindSale,
	"publicidad":        ledger.KindAdvertising,
	"consumo personal":  ledger.KindPersonalConsumption,
	"consumo":           ledger.KindPersonalConsumption,
	"muestra":           ledger.KindMarketingSample,
	"muestra marketing": ledger.KindMarketingSample,
	"apertura de caja":  ledger.KindBoxOpening,
	"apertura":          ledger.KindBoxOpening,
	"prestamo":          ledger.KindLoan,
	"pago de prestamo":  ledger.KindLoanRepayment,
	"pago prestamo":     ledger.KindLoanRepayment,
}

func parseKind(s string) (ledger.Kind, bool) {
	kind, ok := kindLabels[accentFold.Replace(strings.ToLower(strings.TrimSpace(s)))]

	return kind, ok
}

func parseOrigin(s string) ledger.SaleOrigin {
	switch accentFold.Replace(strings.ToLower(strings.TrimSpace(s))) {
	case "recurrente":
		return ledger.SaleOriginRecurring
	case "referido":
		return ledger.SaleOriginReferral
	case "organica", "organico":
		return ledger.SaleOriginOrganic
	default:
		return ""
	}
}
