package checkout

import (
	"context"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/google/uuid"
)

// GetTransactionStatusUseCase is the read-through clients poll while a
// payment settles asynchronously.
type GetTransactionStatusUseCase struct {
	transactionRepo transaction.Repository
}

// NewGetTransactionStatusUseCase creates a new GetTransactionStatusUseCase.
func NewGetTransactionStatusUseCase(transactionRepo transaction.Repository) *GetTransactionStatusUseCase {
	return &GetTransactionStatusUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction for the given ID.
func (uc *GetTransactionStatusUseCase) Execute(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tx, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainErrors.NewDomainError("transaction_lookup", "load transaction", domainErrors.ErrDatabase)
	}
	if tx == nil {
		return nil, domainErrors.ErrTransactionNotFound
	}
	return tx, nil
}
