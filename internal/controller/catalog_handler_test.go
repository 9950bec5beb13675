package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/davidrico/checkout/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeRequest(t *testing.T, pattern string, handler http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProductController_Get(t *testing.T) {
	productRepo := testutil.NewMockProductRepository()
	stockRepo := testutil.NewMockStockRepository()
	productRepo.AddProduct(testutil.NewTestProduct("product-1", 20000))
	stockRepo.SetUnits("product-1", 7)

	h := NewProductController(checkout.NewGetProductUseCase(productRepo, stockRepo))

	rec := routeRequest(t, "/api/v1/products/{id}", h.Get, http.MethodGet, "/api/v1/products/product-1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ProductResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "product-1", resp.ID)
	assert.Equal(t, int64(20000), resp.Price)
	assert.Equal(t, int64(7), resp.Stock)
}

func TestProductController_Get_NotFound(t *testing.T) {
	h := NewProductController(checkout.NewGetProductUseCase(
		testutil.NewMockProductRepository(), testutil.NewMockStockRepository(),
	))

	rec := routeRequest(t, "/api/v1/products/{id}", h.Get, http.MethodGet, "/api/v1/products/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactionController_Get(t *testing.T) {
	txRepo := testutil.NewMockTransactionRepository()
	tx := testutil.NewTestTransaction("product-1", 20000, 5000, 3000)
	txRepo.AddTransaction(tx)

	h := NewTransactionController(checkout.NewGetTransactionStatusUseCase(txRepo))

	rec := routeRequest(t, "/api/v1/transactions/{id}", h.Get, http.MethodGet, "/api/v1/transactions/"+tx.ID.String())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TransactionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, tx.ID.String(), resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, int64(28000), resp.Total)
}

func TestTransactionController_Get_InvalidID(t *testing.T) {
	h := NewTransactionController(checkout.NewGetTransactionStatusUseCase(testutil.NewMockTransactionRepository()))

	rec := routeRequest(t, "/api/v1/transactions/{id}", h.Get, http.MethodGet, "/api/v1/transactions/nope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionController_Get_NotFound(t *testing.T) {
	txRepo := testutil.NewMockTransactionRepository()
	txRepo.GetByIDFunc = nil

	h := NewTransactionController(checkout.NewGetTransactionStatusUseCase(txRepo))

	rec := routeRequest(t, "/api/v1/transactions/{id}", h.Get, http.MethodGet,
		"/api/v1/transactions/a6b5c4d3-1111-2222-3333-444455556666")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
