package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sandboxStub fakes the three sandbox endpoints: card tokenization,
// merchant acceptance token, transaction creation.
func sandboxStub(t *testing.T, txStatus string, statusMessage string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/tokens/cards":
			assert.Equal(t, "Bearer pub_test", r.Header.Get("Authorization"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body["exp_year"], 2)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "tok_123"}})

		case r.Method == http.MethodGet && r.URL.Path == "/merchants/pub_test":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"presigned_acceptance": map[string]any{"acceptance_token": "acc_tok"},
				},
			})

		case r.Method == http.MethodPost && r.URL.Path == "/transactions":
			assert.Equal(t, "Bearer prv_test", r.Header.Get("Authorization"))
			var body createTransactionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "tok_123", body.PaymentMethod.Token)
			assert.Equal(t, "acc_tok", body.AcceptanceToken)
			assert.Equal(t, int64(28000), body.AmountInCents)
			assert.Len(t, body.Signature, 64)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":             "sandbox_tx_1",
					"status":         txStatus,
					"status_message": statusMessage,
				},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func sandboxFor(srv *httptest.Server) *SandboxProvider {
	return NewSandboxProvider(SandboxConfig{
		BaseURL:      srv.URL,
		PublicKey:    "pub_test",
		PrivateKey:   "prv_test",
		IntegrityKey: "integrity_test",
	})
}

func TestSandboxProvider_Approved(t *testing.T) {
	srv := sandboxStub(t, "APPROVED", "")
	defer srv.Close()

	result, err := sandboxFor(srv).CreateCardPayment(context.Background(), testCardRequest("4111111111111111"))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "sandbox_tx_1", result.ProviderTransactionID)
}

func TestSandboxProvider_Pending(t *testing.T) {
	srv := sandboxStub(t, "PENDING", "")
	defer srv.Close()

	result, err := sandboxFor(srv).CreateCardPayment(context.Background(), testCardRequest("4111111111111111"))
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, result.Status)
}

func TestSandboxProvider_Declined(t *testing.T) {
	srv := sandboxStub(t, "DECLINED", "Card declined by issuer")
	defer srv.Close()

	result, err := sandboxFor(srv).CreateCardPayment(context.Background(), testCardRequest("4111111111111111"))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Card declined by issuer", result.FailureReason)
}

func TestSandboxProvider_TokenizationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := sandboxFor(srv).CreateCardPayment(context.Background(), testCardRequest("1234"))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCard)
}

func TestSandboxProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := sandboxFor(srv).CreateCardPayment(context.Background(), testCardRequest("4111111111111111"))
	assert.ErrorIs(t, err, domainErrors.ErrProviderUnavailable)
}
