package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/davidrico/checkout/internal/domain/delivery"
	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.Seed(product.Product{ID: "product-1", Name: "Demo Product", Price: 20000}, 5)
	return s
}

func TestProductRepository_GetByID(t *testing.T) {
	s := seededStore(t)
	repo := NewProductRepository(s)

	p, err := repo.GetByID(context.Background(), "product-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Demo Product", p.Name)

	p, err = repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStockRepository_Decrement(t *testing.T) {
	s := seededStore(t)
	repo := NewStockRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Decrement(ctx, "product-1", 3))

	units, ok, err := repo.GetUnits(ctx, "product-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), units)

	err = repo.Decrement(ctx, "product-1", 3)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientStock)

	err = repo.Decrement(ctx, "missing", 1)
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}

func TestStockRepository_Decrement_Concurrent(t *testing.T) {
	s := NewStore()
	s.Seed(product.Product{ID: "product-1", Price: 20000}, 50)
	repo := NewStockRepository(s)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var insufficient int
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Decrement(ctx, "product-1", 1); err != nil {
				mu.Lock()
				insufficient++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	units, ok, err := repo.GetUnits(ctx, "product-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(0), units)
	assert.Equal(t, 50, insufficient)
}

func TestTransactionRepository_Lifecycle(t *testing.T) {
	s := seededStore(t)
	repo := NewTransactionRepository(s)
	ctx := context.Background()

	tx, err := transaction.New("product-1", 20000, 5000, 3000, transaction.CustomerInfo{
		FullName: "Jane Roe", Phone: "3001234567", Address: "Calle 1", City: "Bogota",
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreatePending(ctx, tx))
	assert.ErrorIs(t, repo.CreatePending(ctx, tx), domainErrors.ErrTransactionAlreadyExists)

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, transaction.StatusPending, got.Status)

	// Mutating a returned copy must not affect the stored record.
	got.Status = transaction.StatusFailed
	again, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, again.Status)

	require.NoError(t, tx.MarkSuccess("provider-tx-1"))
	require.NoError(t, repo.Update(ctx, tx))

	updated, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusSuccess, updated.Status)
	require.NotNil(t, updated.ProviderTransactionID)
	assert.Equal(t, "provider-tx-1", *updated.ProviderTransactionID)
}

func TestDeliveryRepository_OnePerTransaction(t *testing.T) {
	s := seededStore(t)
	repo := NewDeliveryRepository(s)
	ctx := context.Background()

	tx, err := transaction.New("product-1", 20000, 5000, 3000, transaction.CustomerInfo{
		FullName: "Jane Roe", Phone: "3001234567", Address: "Calle 1", City: "Bogota",
	})
	require.NoError(t, err)

	first := delivery.FromTransaction(tx)
	require.NoError(t, repo.Create(ctx, first))

	second := delivery.FromTransaction(tx)
	assert.ErrorIs(t, repo.Create(ctx, second), domainErrors.ErrDeliveryAlreadyExists)
}
