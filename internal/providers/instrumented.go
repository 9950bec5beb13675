package providers

import (
	"context"
	"time"

	"github.com/davidrico/checkout/internal/infrastructure/observability"
)

// instrumentedProvider decorates a Provider with request metrics.
type instrumentedProvider struct {
	inner   Provider
	metrics *observability.Metrics
}

// NewInstrumented wraps a provider so every payment attempt is counted
// and timed.
func NewInstrumented(inner Provider, metrics *observability.Metrics) Provider {
	return &instrumentedProvider{inner: inner, metrics: metrics}
}

func (p *instrumentedProvider) Name() string { return p.inner.Name() }

func (p *instrumentedProvider) CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error) {
	start := time.Now()
	result, err := p.inner.CreateCardPayment(ctx, req)
	p.metrics.ProviderRequestDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = string(result.Status)
	}
	p.metrics.ProviderRequestsTotal.WithLabelValues(p.Name(), status).Inc()

	return result, err
}
