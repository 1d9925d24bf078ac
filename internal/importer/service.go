package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

type Service struct {
	legacyParser Parser
	ledgerSvc    *ledger.Service
	productSvc   *product.Service
}

// NewService wires the parser in from the caller; the legacy parser lives
// in its own subpackage and returns rows of this package's type.
func NewService(legacyParser Parser, ledgerSvc *ledger.Service, productSvc *product.Service) *Service {
	return &Service{
		legacyParser: legacyParser,
		ledgerSvc:    ledgerSvc,
		productSvc:   productSvc,
	}
}

func (s *Service) Parse(source Source, r io.Reader) ([]Row, error) {
	switch source {
	case SourceLegacy:
		return s.legacyParser.Parse(r)
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}
}

type ImportResult struct {
	// Applied holds the outcome of each replayed row, in replay order.
	Applied []*ledger.Result
	// CreatedProducts lists products auto-created during replay because
	// the export referenced names with no catalog entry.
	CreatedProducts []string
	// Conflicts are rows that already exist in the ledger. When any are
	// found, nothing is applied; the caller resolves and resubmits.
	Conflicts []Conflict
	New       []Row
}

type Conflict struct {
	Incoming Row
	Existing *ledger.Transaction
}

// ImportBatch replays parsed rows through the ledger in date order.
// Duplicate detection runs against the existing history over the batch's
// date range first; any hit aborts the import so a re-uploaded export never
// double-applies.
func (s *Service) ImportBatch(ctx context.Context, rows []Row) (*ImportResult, error) {
	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	minDate, maxDate := rows[0].Date, rows[len(rows)-1].Date

	existing, err := s.ledgerSvc.List(ctx, ledger.Filter{StartDate: &minDate, EndDate: &maxDate})
	if err != nil {
		return nil, fmt.Errorf("list existing transactions: %w", err)
	}

	lookup := make(map[string]*ledger.Transaction, len(existing))
	for _, tx := range existing {
		lookup[existingKey(tx)] = tx
	}

	result := &ImportResult{}

	for _, row := range rows {
		if tx, found := lookup[rowKey(row)]; found {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: row, Existing: tx})
			continue
		}

		result.New = append(result.New, row)
	}

	if len(result.Conflicts) > 0 {
		return result, nil
	}

	for _, row := range result.New {
		p, created, err := s.resolveProduct(ctx, row.ProductName)
		if err != nil {
			return nil, fmt.Errorf("resolve product %q: %w", row.ProductName, err)
		}

		if created {
			result.CreatedProducts = append(result.CreatedProducts, p.Name)
		}

		res, err := s.ledgerSvc.Record(ctx, ledger.RecordParams{
			ProductID:       p.ID,
			Kind:            row.Kind,
			QuantityBoxes:   row.QuantityBoxes,
			QuantitySachets: row.QuantitySachets,
			TotalAmount:     row.TotalAmount,
			GiftValue:       row.GiftValue,
			CampaignTag:     row.CampaignTag,
			Notes:           row.Notes,
			SaleOrigin:      row.SaleOrigin,
			CustomerRef:     row.CustomerRef,
			ReferrerRef:     row.ReferrerRef,
			Borrower:        row.Borrower,
			Date:            row.Date,
		})
		if err != nil {
			return nil, fmt.Errorf("replay %s of %q on %s: %w",
				row.Kind, row.ProductName, row.Date.Format(time.DateOnly), err)
		}

		result.Applied = append(result.Applied, res)
	}

	result.New = nil

	return result, nil
}

func (s *Service) resolveProduct(ctx context.Context, name string) (*product.Product, bool, error) {
	p, err := s.productSvc.GetByName(ctx, name)
	if err == nil {
		return p, false, nil
	}

	if !errors.Is(err, product.ErrNotFound) {
		return nil, false, err
	}

	p, err = s.productSvc.Create(ctx, product.CreateParams{Name: name})
	if err != nil {
		return nil, false, err
	}

	return p, true, nil
}

func rowKey(r Row) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d|%s",
		r.Date.Format(time.DateOnly), r.Kind, r.ProductName,
		r.QuantityBoxes, r.QuantitySachets, r.TotalAmount.String())
}

func existingKey(tx *ledger.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d|%s",
		tx.Date.Format(time.DateOnly), tx.Kind, tx.ProductName,
		tx.QuantityBoxes, tx.QuantitySachets, tx.TotalAmount.String())
}
