package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// ledgerTx implements ledger.Tx over one database transaction. The product
// write carries an optimistic version check on top of the row lock so the
// whole command retries cleanly if the row moved between attempts.
type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) ProductForUpdate(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `
		SELECT id, name, stock_boxes, stock_sachets, sachets_per_box,
		       weighted_average_cost, list_price, reward_points, version, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var p product.Product

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.StockBoxes, &p.StockSachets, &p.SachetsPerBox,
		&p.WeightedAverageCost, &p.ListPrice, &p.RewardPoints, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrUnknownProduct
		}

		return nil, fmt.Errorf("locking product: %w", err)
	}

	return &p, nil
}

func (t *ledgerTx) SaveProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET stock_boxes = $1, stock_sachets = $2, weighted_average_cost = $3,
		    version = version + 1, updated_at = NOW()
		WHERE id = $4 AND version = $5
	`

	res, err := t.tx.ExecContext(ctx, query,
		p.StockBoxes, p.StockSachets, p.WeightedAverageCost, p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	if n == 0 {
		return ledger.ErrConcurrentModification
	}

	p.Version++

	return nil
}

func (t *ledgerTx) AppendTransaction(ctx context.Context, entry *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (
			product_id, product_name, kind, quantity_boxes, quantity_sachets,
			total_amount, unit_cost_at_entry, gift_value, campaign_tag, notes,
			sale_origin, customer_ref, referrer_ref, borrower, date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		entry.ProductID, entry.ProductName, entry.Kind, entry.QuantityBoxes, entry.QuantitySachets,
		entry.TotalAmount, entry.UnitCostAtEntry, entry.GiftValue, entry.CampaignTag, entry.Notes,
		entry.SaleOrigin, entry.CustomerRef, entry.ReferrerRef, entry.Borrower, entry.Date,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}

	return nil
}

func (t *ledgerTx) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (product_id, borrower, origin, status, outstanding_boxes, outstanding_sachets, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		l.ProductID, l.Borrower, l.Origin, l.Status, l.OutstandingBoxes, l.OutstandingSachets,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (t *ledgerTx) OpenLoans(ctx context.Context, productID uuid.UUID, borrower string) ([]*loan.Loan, error) {
	query := `
		SELECT id, product_id, borrower, origin, status, outstanding_boxes, outstanding_sachets, created_at, updated_at
		FROM loans
		WHERE product_id = $1 AND status = $2
	`

	args := []any{productID, loan.StatusActive}

	if borrower != "" {
		query += " AND borrower = $3"

		args = append(args, borrower)
	}

	query += " ORDER BY created_at ASC"

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing open loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		var l loan.Loan

		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.Borrower, &l.Origin, &l.Status,
			&l.OutstandingBoxes, &l.OutstandingSachets, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, &l)
	}

	return loans, rows.Err()
}

func (t *ledgerTx) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET status = $1, outstanding_boxes = $2, outstanding_sachets = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := t.tx.ExecContext(ctx, query, l.Status, l.OutstandingBoxes, l.OutstandingSachets, l.ID)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	return nil
}

func (t *ledgerTx) Commit() error {
	return t.tx.Commit()
}

func (t *ledgerTx) Rollback() error {
	return t.tx.Rollback()
}
