package transaction

import (
	"time"

	"github.com/davidrico/checkout/internal/domain/errors"
	"github.com/google/uuid"
)

// Status represents the transaction status in the state machine
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// ProviderSandbox identifies the card-payment backend transactions settle
// against.
const ProviderSandbox = "SANDBOX"

// CustomerInfo is the delivery snapshot captured at checkout start. It is
// immutable for the life of the transaction.
type CustomerInfo struct {
	FullName string
	Phone    string
	Address  string
	City     string
}

// Transaction records one checkout attempt, progressing PENDING to SUCCESS
// or FAILED exactly once. Transactions are never deleted.
type Transaction struct {
	ID                    uuid.UUID
	ProductID             string
	Status                Status
	Amount                int64
	BaseFee               int64
	DeliveryFee           int64
	Total                 int64
	Provider              string
	ProviderTransactionID *string
	FailureReason         *string
	Customer              CustomerInfo
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// New creates a pending transaction. Total is computed here, once, and never
// recomputed afterwards.
func New(productID string, price, baseFee, deliveryFee int64, customer CustomerInfo) (*Transaction, error) {
	if productID == "" {
		return nil, errors.ErrInvalidInput
	}
	if price < 0 || baseFee < 0 || deliveryFee < 0 {
		return nil, errors.NewValidationError("amount", "must not be negative")
	}

	now := time.Now()
	return &Transaction{
		ID:          uuid.New(),
		ProductID:   productID,
		Status:      StatusPending,
		Amount:      price,
		BaseFee:     baseFee,
		DeliveryFee: deliveryFee,
		Total:       price + baseFee + deliveryFee,
		Provider:    ProviderSandbox,
		Customer:    customer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo checks if the transaction can transition to the given status
func (t *Transaction) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusPending: {StatusSuccess, StatusFailed},
		StatusSuccess: {}, // Terminal state
		StatusFailed:  {}, // Terminal state
	}

	allowed, exists := transitions[t.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the transaction to a new status
func (t *Transaction) TransitionTo(newStatus Status) error {
	if !t.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition from "+string(t.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}

	t.Status = newStatus
	t.UpdatedAt = time.Now()
	return nil
}

// MarkSuccess transitions the transaction to SUCCESS and records the
// provider's transaction ID.
func (t *Transaction) MarkSuccess(providerTxID string) error {
	if err := t.TransitionTo(StatusSuccess); err != nil {
		return err
	}
	t.ProviderTransactionID = &providerTxID
	return nil
}

// MarkFailed transitions the transaction to FAILED with a failure reason.
func (t *Transaction) MarkFailed(reason string) error {
	if err := t.TransitionTo(StatusFailed); err != nil {
		return err
	}
	t.FailureReason = &reason
	return nil
}

// SetProviderTransactionID records the provider's ID for a payment that
// produced a business outcome (declines included).
func (t *Transaction) SetProviderTransactionID(id string) {
	t.ProviderTransactionID = &id
}

// IsTerminal checks if the transaction is in a terminal state. Terminal
// transactions never change again.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusSuccess || t.Status == StatusFailed
}
