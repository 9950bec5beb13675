package checkout

import (
	"context"
	"errors"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/delivery"
	"github.com/davidrico/checkout/internal/domain/stock"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/davidrico/checkout/internal/providers"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// stockDecrementFailedReason is recorded on the transaction when payment
// succeeded but the inventory decrement did not.
const stockDecrementFailedReason = "Stock decrement failed"

// CardData carries the raw card fields collected by the client for a
// confirmation attempt.
type CardData struct {
	Number   string
	ExpMonth string
	ExpYear  string
	Cvc      string
	Holder   string
}

// ConfirmCheckoutRequest holds the input for confirming a checkout.
type ConfirmCheckoutRequest struct {
	TransactionID uuid.UUID
	Card          CardData
}

// ConfirmCheckoutResponse carries the transaction as it stands after the
// confirmation attempt. A FAILED transaction with a failure reason is a
// completed checkout whose payment was declined, not a use-case error.
// AlreadyCompleted reports that the transaction was terminal before this
// call and nothing was executed.
type ConfirmCheckoutResponse struct {
	Transaction      *transaction.Transaction
	AlreadyCompleted bool
}

// ConfirmCheckoutUseCase drives a pending transaction to its terminal state:
// payment first, then stock decrement, then delivery creation, in that
// order. A declined card never touches stock; an inventory shortfall is
// caught before a delivery is committed.
type ConfirmCheckoutUseCase struct {
	transactionRepo transaction.Repository
	paymentProvider providers.Provider
	stockRepo       stock.Repository
	deliveryRepo    delivery.Repository
	currency        string
	logger          zerolog.Logger
}

// NewConfirmCheckoutUseCase creates a new ConfirmCheckoutUseCase. currency
// is the deployment's settlement currency.
func NewConfirmCheckoutUseCase(
	transactionRepo transaction.Repository,
	paymentProvider providers.Provider,
	stockRepo stock.Repository,
	deliveryRepo delivery.Repository,
	currency string,
	logger zerolog.Logger,
) *ConfirmCheckoutUseCase {
	return &ConfirmCheckoutUseCase{
		transactionRepo: transactionRepo,
		paymentProvider: paymentProvider,
		stockRepo:       stockRepo,
		deliveryRepo:    deliveryRepo,
		currency:        currency,
		logger:          logger,
	}
}

// Execute confirms a checkout. Re-confirming a terminal transaction returns
// it unchanged with zero side effects, which makes client retries safe.
func (uc *ConfirmCheckoutUseCase) Execute(ctx context.Context, req ConfirmCheckoutRequest) (*ConfirmCheckoutResponse, error) {
	tx, err := uc.transactionRepo.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, domainErrors.NewDomainError("transaction_lookup", "load transaction", domainErrors.ErrDatabase)
	}
	if tx == nil {
		return nil, domainErrors.ErrTransactionNotFound
	}

	// Idempotency guard: evaluated before any external call.
	if tx.IsTerminal() {
		return &ConfirmCheckoutResponse{Transaction: tx, AlreadyCompleted: true}, nil
	}

	result, err := uc.paymentProvider.CreateCardPayment(ctx, providers.CardPaymentRequest{
		Amount:       tx.Total,
		Currency:     uc.currency,
		CardNumber:   req.Card.Number,
		CardExpMonth: req.Card.ExpMonth,
		CardExpYear:  req.Card.ExpYear,
		CardCvc:      req.Card.Cvc,
		CardHolder:   req.Card.Holder,
	})
	if err != nil {
		// Port-level failure. The checkout completed; the payment did not.
		// That is a business outcome, not a use-case error.
		return uc.failTransaction(ctx, tx, domainErrors.ProviderErrorCode(err))
	}

	switch result.Status {
	case providers.StatusFailed:
		tx.SetProviderTransactionID(result.ProviderTransactionID)
		return uc.failTransaction(ctx, tx, result.FailureReason)

	case providers.StatusProcessing:
		// Pending settlement: the caller polls for the terminal state.
		// Nothing is persisted on this path.
		uc.logger.Info().
			Str("transaction_id", tx.ID.String()).
			Str("provider_transaction_id", result.ProviderTransactionID).
			Msg("payment pending settlement")
		return &ConfirmCheckoutResponse{Transaction: tx}, nil
	}

	// Payment succeeded; decrement inventory before committing a delivery.
	if err := uc.stockRepo.Decrement(ctx, tx.ProductID, 1); err != nil {
		// Payment already settled. This is reportable, not a decline.
		uc.logger.Error().
			Str("transaction_id", tx.ID.String()).
			Str("product_id", tx.ProductID).
			Err(err).
			Msg("stock decrement failed after successful payment")
		if _, failErr := uc.failTransaction(ctx, tx, stockDecrementFailedReason); failErr != nil {
			return nil, failErr
		}
		return nil, domainErrors.ErrInsufficientStock
	}

	if err := uc.deliveryRepo.Create(ctx, delivery.FromTransaction(tx)); err != nil {
		// Payment settled and stock decremented with no delivery record:
		// an inconsistency requiring operator attention. No compensation
		// is attempted here.
		uc.logger.Error().
			Str("transaction_id", tx.ID.String()).
			Err(err).
			Msg("delivery creation failed after payment and stock decrement")
		return nil, domainErrors.NewDomainError("delivery_create", "persist delivery", domainErrors.ErrDatabase)
	}

	if err := tx.MarkSuccess(result.ProviderTransactionID); err != nil {
		return nil, err
	}
	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, domainErrors.NewDomainError("transaction_update", "persist transaction", domainErrors.ErrDatabase)
	}

	return &ConfirmCheckoutResponse{Transaction: tx}, nil
}

// failTransaction marks the transaction FAILED, persists it and returns it
// as a successful use-case result.
func (uc *ConfirmCheckoutUseCase) failTransaction(ctx context.Context, tx *transaction.Transaction, reason string) (*ConfirmCheckoutResponse, error) {
	if err := tx.MarkFailed(reason); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStateTransition) {
			return &ConfirmCheckoutResponse{Transaction: tx}, nil
		}
		return nil, err
	}
	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, domainErrors.NewDomainError("transaction_update", "persist transaction", domainErrors.ErrDatabase)
	}
	return &ConfirmCheckoutResponse{Transaction: tx}, nil
}
