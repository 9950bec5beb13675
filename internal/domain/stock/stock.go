package stock

import "context"

// Level is the unit count kept per product. It is only ever mutated through
// Decrement and must never go negative.
type Level struct {
	ProductID string
	Units     int64
}

// Repository defines the interface for stock persistence.
type Repository interface {
	// GetUnits returns the available units for a product. found is false
	// when no stock record exists for the product.
	GetUnits(ctx context.Context, productID string) (units int64, found bool, err error)

	// Decrement atomically subtracts by units from the product's stock.
	// Concurrent decrements for the same product must serialize or use a
	// conditional update; a read-then-write race must not drive the count
	// below zero. Returns ErrInsufficientStock when not enough units
	// remain, ErrProductNotFound when no record exists.
	Decrement(ctx context.Context, productID string, by int64) error
}
