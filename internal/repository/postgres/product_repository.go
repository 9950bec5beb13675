package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository implements product.Repository using PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// GetByID retrieves a product by its ID. Returns (nil, nil) when the
// product does not exist.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	p := &product.Product{}
	err := r.db(ctx).QueryRow(ctx,
		`SELECT id, name, description, price FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// Upsert inserts or updates a product. Used by seeding.
func (r *ProductRepository) Upsert(ctx context.Context, p *product.Product) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO products (id, name, description, price)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price`,
		p.ID, p.Name, p.Description, p.Price,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
