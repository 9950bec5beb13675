package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for transaction persistence
type Repository interface {
	// CreatePending creates a new transaction. Fails with
	// ErrTransactionAlreadyExists if the ID is already present.
	CreatePending(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by ID. Returns (nil, nil) when
	// absent; an error is a repository-level failure only.
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Update updates an existing transaction. Fails with
	// ErrTransactionNotFound if the ID is absent.
	Update(ctx context.Context, tx *Transaction) error
}
