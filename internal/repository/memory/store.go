// Package memory provides in-memory implementations of the checkout
// repositories. It backs the default storage driver for local runs and
// demos, with the same error contracts as the PostgreSQL adapters.
package memory

import (
	"context"
	"sync"

	"github.com/davidrico/checkout/internal/domain/delivery"
	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/google/uuid"
)

// Store holds all in-memory state behind a single mutex. Decrement and
// the transaction writes need atomicity with their own reads, so one
// store-wide lock keeps the adapters simple.
type Store struct {
	mu           sync.Mutex
	products     map[string]product.Product
	stock        map[string]int64
	transactions map[uuid.UUID]transaction.Transaction
	deliveries   map[uuid.UUID]delivery.Delivery
	byTxID       map[uuid.UUID]uuid.UUID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]product.Product),
		stock:        make(map[string]int64),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		deliveries:   make(map[uuid.UUID]delivery.Delivery),
		byTxID:       make(map[uuid.UUID]uuid.UUID),
	}
}

// Seed loads a product with a stock level. Existing entries are replaced.
func (s *Store) Seed(p product.Product, units int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	s.stock[p.ID] = units
}

// NewSeededStore creates a store preloaded with demo catalog data.
func NewSeededStore() *Store {
	s := NewStore()
	s.Seed(product.Product{
		ID:          "product-1",
		Name:        "Demo Product",
		Description: "A demo product for checkout",
		Price:       20000,
	}, 12)
	return s
}

// ProductRepository implements product.Repository on the store.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// StockRepository implements stock.Repository on the store.
type StockRepository struct {
	store *Store
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(store *Store) *StockRepository {
	return &StockRepository{store: store}
}

// GetUnits returns the available units and whether a record exists.
func (r *StockRepository) GetUnits(_ context.Context, productID string) (int64, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	units, ok := r.store.stock[productID]
	return units, ok, nil
}

// Decrement atomically subtracts units, failing when the remaining
// units are insufficient.
func (r *StockRepository) Decrement(_ context.Context, productID string, by int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	units, ok := r.store.stock[productID]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	if units < by {
		return domainErrors.ErrInsufficientStock
	}
	r.store.stock[productID] = units - by
	return nil
}

// TransactionRepository implements transaction.Repository on the store.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// CreatePending stores a new transaction, rejecting duplicate IDs.
func (r *TransactionRepository) CreatePending(_ context.Context, tx *transaction.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.transactions[tx.ID]; exists {
		return domainErrors.ErrTransactionAlreadyExists
	}
	r.store.transactions[tx.ID] = *tx
	return nil
}

// GetByID returns (nil, nil) when the transaction does not exist.
func (r *TransactionRepository) GetByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, nil
	}
	copied := tx
	return &copied, nil
}

// Update replaces a stored transaction.
func (r *TransactionRepository) Update(_ context.Context, tx *transaction.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.transactions[tx.ID]; !exists {
		return domainErrors.ErrTransactionNotFound
	}
	r.store.transactions[tx.ID] = *tx
	return nil
}

// DeliveryRepository implements delivery.Repository on the store.
type DeliveryRepository struct {
	store *Store
}

// NewDeliveryRepository creates a new DeliveryRepository.
func NewDeliveryRepository(store *Store) *DeliveryRepository {
	return &DeliveryRepository{store: store}
}

// Create stores a new delivery, enforcing one delivery per transaction.
func (r *DeliveryRepository) Create(_ context.Context, d *delivery.Delivery) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.deliveries[d.ID]; exists {
		return domainErrors.ErrDeliveryAlreadyExists
	}
	if _, exists := r.store.byTxID[d.TransactionID]; exists {
		return domainErrors.ErrDeliveryAlreadyExists
	}
	r.store.deliveries[d.ID] = *d
	r.store.byTxID[d.TransactionID] = d.ID
	return nil
}
