package postgres

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockRepository implements stock.Repository using PostgreSQL.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

func (r *StockRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// GetUnits returns the available units for a product. The second return
// value is false when no stock record exists.
func (r *StockRepository) GetUnits(ctx context.Context, productID string) (int64, bool, error) {
	var units int64
	err := r.db(ctx).QueryRow(ctx,
		`SELECT units FROM stock WHERE product_id = $1`, productID,
	).Scan(&units)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query stock: %w", err)
	}
	return units, true, nil
}

// Decrement atomically subtracts units from a product's stock. The
// conditional UPDATE guarantees units never go negative under
// concurrent decrements.
func (r *StockRepository) Decrement(ctx context.Context, productID string, by int64) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE stock SET units = units - $1 WHERE product_id = $2 AND units >= $1`,
		by, productID,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db(ctx).QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM stock WHERE product_id = $1)`, productID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check stock record: %w", err)
		}
		if !exists {
			return domainErrors.ErrProductNotFound
		}
		return domainErrors.ErrInsufficientStock
	}
	return nil
}

// Upsert sets the stock level for a product. Used by seeding.
func (r *StockRepository) Upsert(ctx context.Context, productID string, units int64) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO stock (product_id, units) VALUES ($1, $2)
		 ON CONFLICT (product_id) DO UPDATE SET units = EXCLUDED.units`,
		productID, units,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
