package controller

import (
	"time"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/davidrico/checkout/internal/domain/transaction"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (string IDs, validation tags).
// Controllers convert them to use-case requests before calling business
// logic. Card data passes through to the provider and is never persisted.

// DeliveryInfoRequest holds the customer's delivery details.
type DeliveryInfoRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Phone    string `json:"phone" validate:"required,numeric,min=7,max=15"`
	Address  string `json:"address" validate:"required,min=5"`
	City     string `json:"city" validate:"required"`
}

// StartCheckoutRequest holds the input for starting a checkout.
type StartCheckoutRequest struct {
	ProductID    string              `json:"product_id" validate:"required"`
	DeliveryInfo DeliveryInfoRequest `json:"delivery_info" validate:"required"`
}

// CardDataRequest holds the raw card fields for a confirmation attempt.
type CardDataRequest struct {
	Number   string `json:"number" validate:"required,numeric,min=13,max=19,luhn_checksum"`
	ExpMonth string `json:"exp_month" validate:"required,numeric,min=1,max=2"`
	ExpYear  string `json:"exp_year" validate:"required,numeric,min=2,max=4"`
	Cvc      string `json:"cvc" validate:"required,numeric,min=3,max=4"`
	Holder   string `json:"holder" validate:"required,min=3"`
}

// ConfirmCheckoutRequest holds the input for confirming a checkout.
type ConfirmCheckoutRequest struct {
	TransactionID string          `json:"transaction_id" validate:"required,uuid"`
	Card          CardDataRequest `json:"card" validate:"required"`
}

// --- Response DTOs ---

// StartCheckoutResponse carries the ID of the newly created transaction.
type StartCheckoutResponse struct {
	TransactionID string `json:"transaction_id"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    string    `json:"id"`
	ProductID             string    `json:"product_id"`
	Status                string    `json:"status"`
	Amount                int64     `json:"amount"`
	BaseFee               int64     `json:"base_fee"`
	DeliveryFee           int64     `json:"delivery_fee"`
	Total                 int64     `json:"total"`
	Provider              string    `json:"provider"`
	ProviderTransactionID *string   `json:"provider_transaction_id,omitempty"`
	FailureReason         *string   `json:"failure_reason,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ConfirmCheckoutResponse wraps the transaction after a confirmation
// attempt with a human-readable message.
type ConfirmCheckoutResponse struct {
	Message     string               `json:"message"`
	Transaction *TransactionResponse `json:"transaction"`
}

// ProductResponse represents a product with its stock level.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromTransaction converts a domain transaction to API response.
func FromTransaction(t *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID.String(),
		ProductID:             t.ProductID,
		Status:                string(t.Status),
		Amount:                t.Amount,
		BaseFee:               t.BaseFee,
		DeliveryFee:           t.DeliveryFee,
		Total:                 t.Total,
		Provider:              t.Provider,
		ProviderTransactionID: t.ProviderTransactionID,
		FailureReason:         t.FailureReason,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// FromProductWithStock converts a product and its stock level to API
// response.
func FromProductWithStock(p *checkout.ProductWithStock) *ProductResponse {
	return &ProductResponse{
		ID:          p.Product.ID,
		Name:        p.Product.Name,
		Description: p.Product.Description,
		Price:       p.Product.Price,
		Stock:       p.Stock,
	}
}
