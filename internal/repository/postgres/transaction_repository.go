package postgres

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements transaction.Repository using PostgreSQL.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// CreatePending inserts a new transaction in PENDING status.
func (r *TransactionRepository) CreatePending(ctx context.Context, tx *transaction.Transaction) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO transactions
		 (id, product_id, status, amount, base_fee, delivery_fee, total,
		  provider, provider_transaction_id, failure_reason,
		  customer_full_name, customer_phone, customer_address, customer_city,
		  created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		tx.ID, tx.ProductID, string(tx.Status), tx.Amount, tx.BaseFee, tx.DeliveryFee, tx.Total,
		tx.Provider, tx.ProviderTransactionID, tx.FailureReason,
		tx.Customer.FullName, tx.Customer.Phone, tx.Customer.Address, tx.Customer.City,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrTransactionAlreadyExists
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its ID. Returns (nil, nil) when
// the transaction does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tx, err := r.scanTransaction(r.db(ctx).QueryRow(ctx,
		`SELECT id, product_id, status, amount, base_fee, delivery_fee, total,
		        provider, provider_transaction_id, failure_reason,
		        customer_full_name, customer_phone, customer_address, customer_city,
		        created_at, updated_at
		 FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

// Update persists the mutable fields of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE transactions SET
		  status = $1, provider_transaction_id = $2, failure_reason = $3, updated_at = $4
		 WHERE id = $5`,
		string(tx.Status), tx.ProviderTransactionID, tx.FailureReason, tx.UpdatedAt, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) scanTransaction(s scanner) (*transaction.Transaction, error) {
	tx := &transaction.Transaction{}
	var status string
	err := s.Scan(
		&tx.ID, &tx.ProductID, &status, &tx.Amount, &tx.BaseFee, &tx.DeliveryFee, &tx.Total,
		&tx.Provider, &tx.ProviderTransactionID, &tx.FailureReason,
		&tx.Customer.FullName, &tx.Customer.Phone, &tx.Customer.Address, &tx.Customer.City,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Status = transaction.Status(status)
	return tx, nil
}
