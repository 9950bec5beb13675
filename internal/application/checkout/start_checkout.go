package checkout

import (
	"context"
	"errors"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/stock"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/google/uuid"
)

// StartCheckoutRequest holds the input for starting a checkout. Fees are
// caller-supplied, not derived here.
type StartCheckoutRequest struct {
	ProductID    string
	DeliveryInfo transaction.CustomerInfo
	BaseFee      int64
	DeliveryFee  int64
}

// StartCheckoutResponse holds the result of starting a checkout.
type StartCheckoutResponse struct {
	TransactionID uuid.UUID
}

// StartCheckoutUseCase creates a PENDING transaction after validating the
// product and its stock availability. Stock is only checked here, never
// reserved; the decrement happens at confirmation.
type StartCheckoutUseCase struct {
	productRepo     product.Repository
	stockRepo       stock.Repository
	transactionRepo transaction.Repository
}

// NewStartCheckoutUseCase creates a new StartCheckoutUseCase.
func NewStartCheckoutUseCase(
	productRepo product.Repository,
	stockRepo stock.Repository,
	transactionRepo transaction.Repository,
) *StartCheckoutUseCase {
	return &StartCheckoutUseCase{
		productRepo:     productRepo,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute starts a checkout and returns the new transaction's ID.
func (uc *StartCheckoutUseCase) Execute(ctx context.Context, req StartCheckoutRequest) (*StartCheckoutResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, domainErrors.NewDomainError("product_lookup", "look up product", domainErrors.ErrDatabase)
	}
	if p == nil {
		return nil, domainErrors.ErrProductNotFound
	}

	units, found, err := uc.stockRepo.GetUnits(ctx, req.ProductID)
	if err != nil {
		return nil, domainErrors.NewDomainError("stock_lookup", "look up stock", domainErrors.ErrDatabase)
	}
	if !found || units <= 0 {
		return nil, domainErrors.ErrInsufficientStock
	}

	tx, err := transaction.New(req.ProductID, p.Price, req.BaseFee, req.DeliveryFee, req.DeliveryInfo)
	if err != nil {
		return nil, err
	}

	// The caller never supplies the ID, so an already-exists failure means
	// the generator or the repository state is broken. Both surface as a
	// database error.
	if err := uc.transactionRepo.CreatePending(ctx, tx); err != nil {
		if errors.Is(err, domainErrors.ErrTransactionAlreadyExists) {
			return nil, domainErrors.NewDomainError("transaction_collision", "transaction id collision", domainErrors.ErrDatabase)
		}
		return nil, domainErrors.NewDomainError("transaction_create", "persist transaction", domainErrors.ErrDatabase)
	}

	return &StartCheckoutResponse{TransactionID: tx.ID}, nil
}
