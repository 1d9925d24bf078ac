package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectProductColumns = `
	id, name, stock_boxes, stock_sachets, sachets_per_box,
	weighted_average_cost, list_price, reward_points, version, created_at, updated_at
`

func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	if err := s.Scan(
		&p.ID, &p.Name, &p.StockBoxes, &p.StockSachets, &p.SachetsPerBox,
		&p.WeightedAverageCost, &p.ListPrice, &p.RewardPoints, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, stock_boxes, stock_sachets, sachets_per_box,
			weighted_average_cost, list_price, reward_points, version, created_at)
		VALUES ($1, 0, 0, $2, $3, $4, $5, 0, NOW())
		RETURNING id, version, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.SachetsPerBox, p.WeightedAverageCost, p.ListPrice, p.RewardPoints,
	).Scan(&p.ID, &p.Version, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrDuplicateName
		}

		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) GetProductByName(ctx context.Context, name string) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE name = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product by name: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *Store) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE products SET name = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrDuplicateName
		}

		return fmt.Errorf("renaming product: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}

	return nil
}

func (s *Store) UpdatePricing(ctx context.Context, id uuid.UUID, listPrice decimal.Decimal, rewardPoints int) error {
	query := `UPDATE products SET list_price = $1, reward_points = $2, updated_at = NOW() WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, listPrice, rewardPoints, id)
	if err != nil {
		return fmt.Errorf("updating pricing: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}

	return nil
}

// DeleteCascade removes the product and its whole transaction and loan
// history in one transaction. Irreversible.
func (s *Store) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM loans WHERE product_id = $1`,
		`DELETE FROM transactions WHERE product_id = $1`,
		`DELETE FROM products WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("cascading delete: %w", err)
		}
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
