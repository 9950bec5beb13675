package providers

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockProvider(t *testing.T) {
	provider := NewMockProvider("test")

	assert.NotNil(t, provider)
	assert.Equal(t, "test", provider.Name())
}

func testCardRequest(cardNumber string) CardPaymentRequest {
	return CardPaymentRequest{
		Amount:       28000,
		Currency:     "COP",
		CardNumber:   cardNumber,
		CardExpMonth: "08",
		CardExpYear:  "2030",
		CardCvc:      "123",
		CardHolder:   "JANE ROE",
	}
}

func TestMockProvider_ApprovedCard(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Millisecond), WithDeclineRate(1.0))
	ctx := context.Background()

	result, err := provider.CreateCardPayment(ctx, testCardRequest(TestCardApproved))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Contains(t, result.ProviderTransactionID, "test_txn_")
	assert.Empty(t, result.FailureReason)
}

func TestMockProvider_DeclinedCard(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Millisecond))
	ctx := context.Background()

	result, err := provider.CreateCardPayment(ctx, testCardRequest(TestCardDeclined))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Card declined", result.FailureReason)
	assert.NotEmpty(t, result.ProviderTransactionID)
}

func TestMockProvider_ProcessingCard(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Millisecond))
	ctx := context.Background()

	result, err := provider.CreateCardPayment(ctx, testCardRequest(TestCardProcessing))
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, result.Status)
}

func TestMockProvider_ErrorRate(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Millisecond), WithErrorRate(1.0))
	ctx := context.Background()

	result, err := provider.CreateCardPayment(ctx, testCardRequest("5555555555554444"))
	assert.ErrorIs(t, err, domainErrors.ErrProviderUnavailable)
	assert.Nil(t, result)
}

func TestMockProvider_DeclineRate(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Millisecond), WithDeclineRate(1.0))
	ctx := context.Background()

	result, err := provider.CreateCardPayment(ctx, testCardRequest("5555555555554444"))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.FailureReason, "simulated decline")
}

func TestMockProvider_ContextCancelled(t *testing.T) {
	provider := NewMockProvider("test", WithLatency(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.CreateCardPayment(ctx, testCardRequest(TestCardApproved))
	assert.ErrorIs(t, err, context.Canceled)
}
