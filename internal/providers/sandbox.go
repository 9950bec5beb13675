package providers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
)

// SandboxConfig holds the credentials for the sandbox payment backend.
type SandboxConfig struct {
	BaseURL      string
	PublicKey    string
	PrivateKey   string
	IntegrityKey string
	Timeout      time.Duration
}

// SandboxProvider talks to the simulated card-payment backend over HTTP.
// A payment is a two-step exchange: tokenize the card with the public key,
// then create a transaction with the private key and an integrity signature.
type SandboxProvider struct {
	cfg    SandboxConfig
	client *http.Client
}

// NewSandboxProvider creates a SandboxProvider.
func NewSandboxProvider(cfg SandboxConfig) *SandboxProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SandboxProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *SandboxProvider) Name() string { return "sandbox" }

// CreateCardPayment tokenizes the card and creates a transaction against the
// sandbox. The provider call is attempted once; retrying is the caller's
// concern.
func (p *SandboxProvider) CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error) {
	token, err := p.createCardToken(ctx, req)
	if err != nil {
		return nil, err
	}
	return p.createTransaction(ctx, token, req.Amount, req.Currency)
}

type cardTokenRequest struct {
	Number     string `json:"number"`
	Cvc        string `json:"cvc"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CardHolder string `json:"card_holder"`
}

type cardTokenResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (p *SandboxProvider) createCardToken(ctx context.Context, req CardPaymentRequest) (string, error) {
	expYear := req.CardExpYear
	if len(expYear) > 2 {
		expYear = expYear[len(expYear)-2:]
	}

	body := cardTokenRequest{
		Number:     req.CardNumber,
		Cvc:        req.CardCvc,
		ExpMonth:   req.CardExpMonth,
		ExpYear:    expYear,
		CardHolder: req.CardHolder,
	}

	var resp cardTokenResponse
	status, err := p.postJSON(ctx, "/tokens/cards", p.cfg.PublicKey, body, &resp)
	if err != nil {
		return "", domainErrors.ErrProviderUnavailable
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", domainErrors.ErrInvalidCard
	}
	return resp.Data.ID, nil
}

type createTransactionRequest struct {
	AcceptanceToken string             `json:"acceptance_token"`
	AmountInCents   int64              `json:"amount_in_cents"`
	Currency        string             `json:"currency"`
	CustomerEmail   string             `json:"customer_email"`
	PaymentMethod   paymentMethodField `json:"payment_method"`
	Reference       string             `json:"reference"`
	Signature       string             `json:"signature"`
}

type paymentMethodField struct {
	Type         string `json:"type"`
	Token        string `json:"token"`
	Installments int    `json:"installments"`
}

type createTransactionResponse struct {
	Data struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		StatusMessage string `json:"status_message"`
	} `json:"data"`
}

func (p *SandboxProvider) createTransaction(ctx context.Context, token string, amount int64, currency string) (*CardPaymentResult, error) {
	acceptanceToken, err := p.acceptanceToken(ctx)
	if err != nil {
		return nil, domainErrors.ErrProviderUnavailable
	}

	reference := fmt.Sprintf("ref-%d", time.Now().UnixNano())
	body := createTransactionRequest{
		AcceptanceToken: acceptanceToken,
		AmountInCents:   amount,
		Currency:        currency,
		CustomerEmail:   "customer@test.com",
		PaymentMethod: paymentMethodField{
			Type:         "CARD",
			Token:        token,
			Installments: 1,
		},
		Reference: reference,
		Signature: p.signature(reference, amount, currency),
	}

	var resp createTransactionResponse
	status, err := p.postJSON(ctx, "/transactions", p.cfg.PrivateKey, body, &resp)
	if err != nil {
		return nil, domainErrors.ErrProviderUnavailable
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, domainErrors.ErrCardDeclined
	}

	switch resp.Data.Status {
	case "APPROVED":
		return &CardPaymentResult{
			ProviderTransactionID: resp.Data.ID,
			Status:                StatusSuccess,
		}, nil
	case "PENDING":
		return &CardPaymentResult{
			ProviderTransactionID: resp.Data.ID,
			Status:                StatusProcessing,
		}, nil
	default:
		reason := resp.Data.StatusMessage
		if reason == "" {
			reason = "Payment declined"
		}
		return &CardPaymentResult{
			ProviderTransactionID: resp.Data.ID,
			Status:                StatusFailed,
			FailureReason:         reason,
		}, nil
	}
}

type merchantResponse struct {
	Data struct {
		PresignedAcceptance struct {
			AcceptanceToken string `json:"acceptance_token"`
		} `json:"presigned_acceptance"`
	} `json:"data"`
}

func (p *SandboxProvider) acceptanceToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/merchants/"+p.cfg.PublicKey, nil)
	if err != nil {
		return "", err
	}

	httpResp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("merchant lookup returned %d", httpResp.StatusCode)
	}

	var resp merchantResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", err
	}
	return resp.Data.PresignedAcceptance.AcceptanceToken, nil
}

// signature is the SHA-256 integrity digest the sandbox requires on every
// transaction: reference + amount + currency + integrity key.
func (p *SandboxProvider) signature(reference string, amount int64, currency string) string {
	payload := fmt.Sprintf("%s%d%s%s", reference, amount, currency, p.cfg.IntegrityKey)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func (p *SandboxProvider) postJSON(ctx context.Context, path, bearer string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, nil
		}
	}
	return resp.StatusCode, nil
}
