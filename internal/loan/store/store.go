package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectLoanColumns = `
	id, product_id, borrower, origin, status, outstanding_boxes, outstanding_sachets, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(s scanner) (*loan.Loan, error) {
	var l loan.Loan

	if err := s.Scan(
		&l.ID, &l.ProductID, &l.Borrower, &l.Origin, &l.Status,
		&l.OutstandingBoxes, &l.OutstandingSachets, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &l, nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE id = $1`

	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Borrower != nil {
		query += fmt.Sprintf(" AND borrower = $%d", argIdx)

		args = append(args, *filter.Borrower)
		argIdx++
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	return loans, rows.Err()
}

func (s *Store) BalancesByProduct(ctx context.Context) (map[uuid.UUID]loan.Balance, error) {
	query := `
		SELECT product_id, SUM(outstanding_boxes), SUM(outstanding_sachets)
		FROM loans
		WHERE status = $1
		GROUP BY product_id
	`

	rows, err := s.db.QueryContext(ctx, query, loan.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("aggregating balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[uuid.UUID]loan.Balance)

	for rows.Next() {
		var id uuid.UUID

		var b loan.Balance

		if err := rows.Scan(&id, &b.Boxes, &b.Sachets); err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}

		balances[id] = b
	}

	return balances, rows.Err()
}
