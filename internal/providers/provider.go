package providers

import (
	"context"
)

// PaymentStatus is the business outcome reported by a provider for a card
// payment that went through. A port-level error (network, rejected request)
// is reported through the error return instead.
type PaymentStatus string

const (
	StatusSuccess    PaymentStatus = "SUCCESS"
	StatusFailed     PaymentStatus = "FAILED"
	StatusProcessing PaymentStatus = "PROCESSING"
)

// CardPaymentRequest carries the raw card fields and the charge amount in
// the minor unit of the settlement currency.
type CardPaymentRequest struct {
	Amount       int64
	Currency     string
	CardNumber   string
	CardExpMonth string
	CardExpYear  string
	CardCvc      string
	CardHolder   string
}

// CardPaymentResult is the provider's answer for a payment attempt.
// FailureReason is set only when Status is FAILED.
type CardPaymentResult struct {
	ProviderTransactionID string
	Status                PaymentStatus
	FailureReason         string
}

// Provider is the port for the external card-payment backend.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// CreateCardPayment initiates a card payment and returns a terminal or
	// pending status. Port-level failures map to the sentinel errors in
	// internal/domain/errors (ErrProviderUnavailable, ErrInvalidCard,
	// ErrInsufficientFunds, ErrCardDeclined, ErrProviderUnknown).
	CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error)
}
