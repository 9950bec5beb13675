package providers

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/sony/gobreaker/v2"
)

// Factory keeps registered providers behind a circuit breaker each. Get
// returns the provider wrapped so callers never talk to a tripped backend.
type Factory struct {
	providers       map[string]Provider
	circuitBreakers map[string]*gobreaker.CircuitBreaker[*CardPaymentResult]
	onStateChange   func(name string, state gobreaker.State)
	tripThreshold   uint32
	breakerTimeout  time.Duration
}

type FactoryOption func(*Factory)

// WithStateChangeHook installs a callback fired on breaker state changes,
// used to keep the circuit-breaker gauge current.
func WithStateChangeHook(fn func(name string, state gobreaker.State)) FactoryOption {
	return func(f *Factory) { f.onStateChange = fn }
}

// WithBreakerSettings tunes the request count needed before a breaker may
// trip and how long an open breaker waits before probing again.
func WithBreakerSettings(tripThreshold int, timeout time.Duration) FactoryOption {
	return func(f *Factory) {
		if tripThreshold > 0 {
			f.tripThreshold = uint32(tripThreshold)
		}
		if timeout > 0 {
			f.breakerTimeout = timeout
		}
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		providers:       make(map[string]Provider),
		circuitBreakers: make(map[string]*gobreaker.CircuitBreaker[*CardPaymentResult]),
		tripThreshold:   10,
		breakerTimeout:  30 * time.Second,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Factory) Register(p Provider) {
	f.providers[p.Name()] = p
	f.circuitBreakers[p.Name()] = gobreaker.NewCircuitBreaker[*CardPaymentResult](gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     f.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= f.tripThreshold && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if f.onStateChange != nil {
				f.onStateChange(name, to)
			}
		},
	})
}

// Get returns the named provider wrapped with its circuit breaker.
func (f *Factory) Get(name string) (Provider, error) {
	p, ok := f.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return &breakerProvider{inner: p, breaker: f.circuitBreakers[name]}, nil
}

// breakerProvider decorates a Provider with a circuit breaker. An open
// circuit surfaces as ErrProviderUnavailable, a port-level outcome the
// confirm flow already handles.
type breakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker[*CardPaymentResult]
}

func (b *breakerProvider) Name() string { return b.inner.Name() }

func (b *breakerProvider) CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error) {
	result, err := b.breaker.Execute(func() (*CardPaymentResult, error) {
		return b.inner.CreateCardPayment(ctx, req)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, domainErrors.NewDomainError("circuit_open", "provider circuit open", domainErrors.ErrProviderUnavailable)
	}
	return result, err
}
