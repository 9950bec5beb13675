package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/davidrico/checkout/internal/application/checkout"
	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/davidrico/checkout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRequest() checkout.StartCheckoutRequest {
	return checkout.StartCheckoutRequest{
		ProductID:    "product-1",
		DeliveryInfo: testutil.NewTestCustomer(),
		BaseFee:      5000,
		DeliveryFee:  3000,
	}
}

func TestStartCheckout_Success(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))
	stockRepo.SetUnits("product-1", 12)

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	resp, err := uc.Execute(ctx, startRequest())
	require.NoError(t, err)

	tx := txRepo.Transaction(resp.TransactionID)
	require.NotNil(t, tx)
	assert.Equal(t, transaction.StatusPending, tx.Status)
	assert.Equal(t, int64(20000), tx.Amount)
	assert.Equal(t, int64(5000), tx.BaseFee)
	assert.Equal(t, int64(3000), tx.DeliveryFee)
	assert.Equal(t, int64(28000), tx.Total)
	assert.Equal(t, "Jane Roe", tx.Customer.FullName)
	assert.Equal(t, "Bogota", tx.Customer.City)

	// Availability check only: no unit is reserved here.
	assert.Equal(t, int64(12), stockRepo.Units("product-1"))
	assert.Zero(t, stockRepo.DecrementCalls)
}

func TestStartCheckout_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
	assert.Zero(t, txRepo.Count())
}

func TestStartCheckout_NoStockRecord(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientStock)
	assert.Zero(t, txRepo.Count())
}

func TestStartCheckout_ZeroStock(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))
	stockRepo.SetUnits("product-1", 0)

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientStock)
	assert.Zero(t, txRepo.Count())
}

func TestStartCheckout_ProductLookupFailure(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.GetByIDFunc = func(ctx context.Context, id string) (*product.Product, error) {
		return nil, errors.New("connection reset")
	}

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrDatabase)
}

func TestStartCheckout_CreateCollision(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))
	stockRepo.SetUnits("product-1", 5)
	txRepo.CreatePendingFunc = func(ctx context.Context, tx *transaction.Transaction) error {
		return domainErrors.ErrTransactionAlreadyExists
	}

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrDatabase)
}

func TestStartCheckout_PersistFailure(t *testing.T) {
	ctx := context.Background()
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	txRepo := testutil.NewMockTransactionRepository()

	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))
	stockRepo.SetUnits("product-1", 5)
	txRepo.CreatePendingFunc = func(ctx context.Context, tx *transaction.Transaction) error {
		return errors.New("write timeout")
	}

	uc := checkout.NewStartCheckoutUseCase(productRepo, stockRepo, txRepo)

	_, err := uc.Execute(ctx, startRequest())
	assert.ErrorIs(t, err, domainErrors.ErrDatabase)
}
