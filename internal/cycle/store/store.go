package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/cycle"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectCycleColumns = `
	id, number, name, start_date, end_date, closed_at, notes, aggregates, vs_previous
`

type scanner interface {
	Scan(dest ...any) error
}

// scanCycle reads a cycle row; aggregates and deltas are stored as frozen
// JSON documents so close-time values are returned verbatim.
func scanCycle(s scanner) (*cycle.BusinessCycle, error) {
	var c cycle.BusinessCycle

	var aggregates []byte

	var vsPrevious []byte

	if err := s.Scan(
		&c.ID, &c.Number, &c.Name, &c.StartDate, &c.EndDate, &c.ClosedAt, &c.Notes,
		&aggregates, &vsPrevious,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(aggregates, &c.Aggregates); err != nil {
		return nil, fmt.Errorf("decoding aggregates: %w", err)
	}

	if len(vsPrevious) > 0 {
		c.VsPrevious = &cycle.Deltas{}
		if err := json.Unmarshal(vsPrevious, c.VsPrevious); err != nil {
			return nil, fmt.Errorf("decoding deltas: %w", err)
		}
	}

	return &c, nil
}

// AppendCycle inserts the cycle and assigns the next sequential number in
// the same statement, so concurrent closes cannot share a number.
func (s *Store) AppendCycle(ctx context.Context, c *cycle.BusinessCycle) error {
	aggregates, err := json.Marshal(c.Aggregates)
	if err != nil {
		return fmt.Errorf("encoding aggregates: %w", err)
	}

	var vsPrevious []byte

	if c.VsPrevious != nil {
		vsPrevious, err = json.Marshal(c.VsPrevious)
		if err != nil {
			return fmt.Errorf("encoding deltas: %w", err)
		}
	}

	query := `
		INSERT INTO business_cycles (number, name, start_date, end_date, closed_at, notes, aggregates, vs_previous)
		SELECT COALESCE(MAX(number), 0) + 1, $1, $2, $3, NOW(), $4, $5, $6 FROM business_cycles
		RETURNING id, number, closed_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.Name, c.StartDate, c.EndDate, c.Notes, aggregates, vsPrevious,
	).Scan(&c.ID, &c.Number, &c.ClosedAt)
	if err != nil {
		return fmt.Errorf("appending cycle: %w", err)
	}

	return nil
}

func (s *Store) GetCycle(ctx context.Context, id uuid.UUID) (*cycle.BusinessCycle, error) {
	query := `SELECT ` + selectCycleColumns + ` FROM business_cycles WHERE id = $1`

	c, err := scanCycle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cycle.ErrNotFound
		}

		return nil, fmt.Errorf("getting cycle: %w", err)
	}

	return c, nil
}

func (s *Store) LastCycle(ctx context.Context) (*cycle.BusinessCycle, error) {
	query := `SELECT ` + selectCycleColumns + ` FROM business_cycles ORDER BY number DESC LIMIT 1`

	c, err := scanCycle(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting last cycle: %w", err)
	}

	return c, nil
}

func (s *Store) ListCycles(ctx context.Context) ([]*cycle.BusinessCycle, error) {
	query := `SELECT ` + selectCycleColumns + ` FROM business_cycles ORDER BY number DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*cycle.BusinessCycle

	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cycle: %w", err)
		}

		cycles = append(cycles, c)
	}

	return cycles, rows.Err()
}

// UpdateNotes is the only write allowed on a closed cycle.
func (s *Store) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	query := `UPDATE business_cycles SET notes = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, notes, id)
	if err != nil {
		return fmt.Errorf("updating notes: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return cycle.ErrNotFound
	}

	return nil
}
