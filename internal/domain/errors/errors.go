package errors

import (
	"errors"
	"fmt"
)

// Use-case level errors. These abort an operation and carry no transaction
// payload. A declined card is not one of them; it travels inside the
// returned transaction as a FAILED status with a failure reason.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDatabase            = errors.New("database error")

	// Repository errors
	ErrTransactionAlreadyExists = errors.New("transaction already exists")
	ErrDeliveryAlreadyExists    = errors.New("delivery already exists")

	// Domain errors
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")

	// Payment provider port errors
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrInvalidCard         = errors.New("invalid card")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCardDeclined        = errors.New("card declined")
	ErrProviderUnknown     = errors.New("unknown provider error")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ProviderErrorCode returns the wire-level code recorded on a transaction
// when a provider port call fails before producing a business outcome.
func ProviderErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		return "PROVIDER_UNAVAILABLE"
	case errors.Is(err, ErrInvalidCard):
		return "INVALID_CARD"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrCardDeclined):
		return "CARD_DECLINED"
	default:
		return "UNKNOWN_ERROR"
	}
}
