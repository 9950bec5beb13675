package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidrico/checkout/internal/domain/delivery"
	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeliveryRepository implements delivery.Repository using PostgreSQL.
type DeliveryRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository creates a new DeliveryRepository.
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

func (r *DeliveryRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// Create inserts a new delivery. The unique constraint on transaction_id
// enforces at most one delivery per transaction at the storage level.
func (r *DeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO deliveries
		 (id, transaction_id, product_id, status, full_name, phone, address, city, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, d.TransactionID, d.ProductID, string(d.Status),
		d.FullName, d.Phone, d.Address, d.City, d.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDeliveryAlreadyExists
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}
