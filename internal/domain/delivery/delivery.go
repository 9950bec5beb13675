package delivery

import (
	"context"
	"time"

	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/google/uuid"
)

// Status represents the delivery status
type Status string

// StatusCreated is the only status checkout ever produces; downstream
// fulfillment owns the rest of the lifecycle.
const StatusCreated Status = "CREATED"

// Delivery is created at most once per transaction, only after the payment
// succeeded and the stock decrement committed.
type Delivery struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ProductID     string
	Status        Status
	FullName      string
	Phone         string
	Address       string
	City          string
	CreatedAt     time.Time
}

// FromTransaction derives a delivery record from a transaction's customer
// snapshot.
func FromTransaction(tx *transaction.Transaction) *Delivery {
	return &Delivery{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		ProductID:     tx.ProductID,
		Status:        StatusCreated,
		FullName:      tx.Customer.FullName,
		Phone:         tx.Customer.Phone,
		Address:       tx.Customer.Address,
		City:          tx.Customer.City,
		CreatedAt:     time.Now(),
	}
}

// Repository defines the interface for delivery persistence.
type Repository interface {
	// Create creates a new delivery. Fails with ErrDeliveryAlreadyExists
	// if the ID is already present; IDs are generated fresh, so a
	// collision means repository state is unexpected.
	Create(ctx context.Context, d *Delivery) error
}
