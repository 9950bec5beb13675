package testutil

import (
	"context"
	"sync"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/delivery"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/davidrico/checkout/internal/providers"
	"github.com/google/uuid"
)

// --- Product Repository Mock ---

// MockProductRepository is a mock implementation of product.Repository.
type MockProductRepository struct {
	mu       sync.Mutex
	products map[string]*product.Product

	GetByIDFunc func(ctx context.Context, id string) (*product.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*product.Product)}
}

func (m *MockProductRepository) AddProduct(p *product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// --- Stock Repository Mock ---

// MockStockRepository is a mock implementation of stock.Repository.
type MockStockRepository struct {
	mu    sync.Mutex
	units map[string]int64

	DecrementCalls int

	GetUnitsFunc  func(ctx context.Context, productID string) (int64, bool, error)
	DecrementFunc func(ctx context.Context, productID string, by int64) error
}

func NewMockStockRepository() *MockStockRepository {
	return &MockStockRepository{units: make(map[string]int64)}
}

func (m *MockStockRepository) SetUnits(productID string, units int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[productID] = units
}

func (m *MockStockRepository) Units(productID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.units[productID]
}

func (m *MockStockRepository) GetUnits(ctx context.Context, productID string) (int64, bool, error) {
	if m.GetUnitsFunc != nil {
		return m.GetUnitsFunc(ctx, productID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	units, ok := m.units[productID]
	return units, ok, nil
}

func (m *MockStockRepository) Decrement(ctx context.Context, productID string, by int64) error {
	m.mu.Lock()
	m.DecrementCalls++
	m.mu.Unlock()
	if m.DecrementFunc != nil {
		return m.DecrementFunc(ctx, productID, by)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	units, ok := m.units[productID]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	if units < by {
		return domainErrors.ErrInsufficientStock
	}
	m.units[productID] = units - by
	return nil
}

// --- Transaction Repository Mock ---

// MockTransactionRepository is a mock implementation of transaction.Repository.
type MockTransactionRepository struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*transaction.Transaction

	UpdateCalls int

	CreatePendingFunc func(ctx context.Context, tx *transaction.Transaction) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	UpdateFunc        func(ctx context.Context, tx *transaction.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[uuid.UUID]*transaction.Transaction)}
}

func (m *MockTransactionRepository) AddTransaction(tx *transaction.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
}

func (m *MockTransactionRepository) Transaction(id uuid.UUID) *transaction.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transactions[id]
}

func (m *MockTransactionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

func (m *MockTransactionRepository) CreatePending(ctx context.Context, tx *transaction.Transaction) error {
	if m.CreatePendingFunc != nil {
		return m.CreatePendingFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.transactions[tx.ID]; exists {
		return domainErrors.ErrTransactionAlreadyExists
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return tx, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.transactions[tx.ID]; !exists {
		return domainErrors.ErrTransactionNotFound
	}
	m.transactions[tx.ID] = tx
	return nil
}

// --- Delivery Repository Mock ---

// MockDeliveryRepository is a mock implementation of delivery.Repository.
type MockDeliveryRepository struct {
	mu         sync.Mutex
	deliveries []*delivery.Delivery

	CreateFunc func(ctx context.Context, d *delivery.Delivery) error
}

func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{}
}

func (m *MockDeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.deliveries {
		if existing.ID == d.ID {
			return domainErrors.ErrDeliveryAlreadyExists
		}
	}
	m.deliveries = append(m.deliveries, d)
	return nil
}

func (m *MockDeliveryRepository) Deliveries() []*delivery.Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*delivery.Delivery, len(m.deliveries))
	copy(out, m.deliveries)
	return out
}

// --- Payment Provider Mock ---

// MockPaymentProvider is a scriptable implementation of providers.Provider.
type MockPaymentProvider struct {
	mu    sync.Mutex
	Calls int

	Result *providers.CardPaymentResult
	Err    error

	CreateCardPaymentFunc func(ctx context.Context, req providers.CardPaymentRequest) (*providers.CardPaymentResult, error)
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{
		Result: &providers.CardPaymentResult{
			ProviderTransactionID: "mock_txn_1",
			Status:                providers.StatusSuccess,
		},
	}
}

func (m *MockPaymentProvider) Name() string { return "mock" }

func (m *MockPaymentProvider) CreateCardPayment(ctx context.Context, req providers.CardPaymentRequest) (*providers.CardPaymentResult, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.CreateCardPaymentFunc != nil {
		return m.CreateCardPaymentFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
