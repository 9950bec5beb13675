package providers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/google/uuid"
)

// Well-known test cards the mock honors regardless of its configured rates.
const (
	TestCardApproved   = "4242424242424242"
	TestCardDeclined   = "4000000000000002"
	TestCardProcessing = "4000000000009995"
)

type MockProvider struct {
	name           string
	declineRate    float64 // 0.0 to 1.0
	processingRate float64 // 0.0 to 1.0
	errorRate      float64 // 0.0 to 1.0, port-level errors
	latency        time.Duration
}

type MockProviderOption func(*MockProvider)

func WithDeclineRate(rate float64) MockProviderOption {
	return func(p *MockProvider) { p.declineRate = rate }
}

func WithProcessingRate(rate float64) MockProviderOption {
	return func(p *MockProvider) { p.processingRate = rate }
}

func WithErrorRate(rate float64) MockProviderOption {
	return func(p *MockProvider) { p.errorRate = rate }
}

func WithLatency(d time.Duration) MockProviderOption {
	return func(p *MockProvider) { p.latency = d }
}

func NewMockProvider(name string, opts ...MockProviderOption) *MockProvider {
	p := &MockProvider{
		name:    name,
		latency: 100 * time.Millisecond,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *MockProvider) Name() string { return p.name }

func (p *MockProvider) CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error) {
	// Simulate latency
	select {
	case <-time.After(p.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	switch req.CardNumber {
	case TestCardApproved:
		return p.approved(), nil
	case TestCardDeclined:
		return p.declined("Card declined"), nil
	case TestCardProcessing:
		return p.processing(), nil
	}

	if rand.Float64() < p.errorRate {
		return nil, domainErrors.ErrProviderUnavailable
	}
	if rand.Float64() < p.declineRate {
		return p.declined(fmt.Sprintf("%s: simulated decline", p.name)), nil
	}
	if rand.Float64() < p.processingRate {
		return p.processing(), nil
	}
	return p.approved(), nil
}

func (p *MockProvider) approved() *CardPaymentResult {
	return &CardPaymentResult{
		ProviderTransactionID: p.txnID(),
		Status:                StatusSuccess,
	}
}

func (p *MockProvider) declined(reason string) *CardPaymentResult {
	return &CardPaymentResult{
		ProviderTransactionID: p.txnID(),
		Status:                StatusFailed,
		FailureReason:         reason,
	}
}

func (p *MockProvider) processing() *CardPaymentResult {
	return &CardPaymentResult{
		ProviderTransactionID: p.txnID(),
		Status:                StatusProcessing,
	}
}

func (p *MockProvider) txnID() string {
	return fmt.Sprintf("%s_txn_%s", p.name, uuid.New().String()[:8])
}
