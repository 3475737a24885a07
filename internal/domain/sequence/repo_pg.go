package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// NextValue always opens its own transaction, regardless of any
// transaction carried in ctx. Document numbers are allowed to gap when a
// caller later rolls back; visits are not allowed to be half-written, so
// the two must not share an atomic unit.
func (r *repoPG) NextValue(ctx context.Context, year int, locationID uuid.UUID) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin allocation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var last int64
	err = tx.QueryRow(ctx,
		`SELECT last_value FROM document_sequence WHERE year = $1 AND location_id = $2 FOR UPDATE`,
		year, locationID,
	).Scan(&last)

	var next int64
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		next = 1
		_, err = tx.Exec(ctx,
			`INSERT INTO document_sequence (id, year, location_id, last_value) VALUES ($1,$2,$3,$4)`,
			uuid.New(), year, locationID, next,
		)
		if err != nil {
			return 0, fmt.Errorf("create sequence row: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("lock sequence row: %w", err)
	default:
		next = last + 1
		_, err = tx.Exec(ctx,
			`UPDATE document_sequence SET last_value = $3, updated_at = NOW() WHERE year = $1 AND location_id = $2`,
			year, locationID, next,
		)
		if err != nil {
			return 0, fmt.Errorf("advance sequence row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit allocation: %w", err)
	}
	return next, nil
}

func (r *repoPG) Current(ctx context.Context, year int, locationID uuid.UUID) (int64, error) {
	var last int64
	err := r.pool.QueryRow(ctx,
		`SELECT last_value FROM document_sequence WHERE year = $1 AND location_id = $2`,
		year, locationID,
	).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last, nil
}
