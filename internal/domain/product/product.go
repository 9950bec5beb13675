package product

import "context"

// Product is immutable catalog reference data. Price is expressed in the
// minor unit of the settlement currency.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
}

// Repository defines the interface for product lookups. Products are owned
// by the catalog; checkout only ever reads them.
type Repository interface {
	// GetByID retrieves a product by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*Product, error)
}
