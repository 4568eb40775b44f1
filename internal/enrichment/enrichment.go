// Package enrichment attaches externally sourced data to scanned
// opportunities before strategies score them. Enrichment is best effort: a
// provider failure leaves its fields unset, and strategies decline on
// absent fields rather than erroring.
package enrichment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// Provider fills one or more fields of an opportunity's enrichment data.
type Provider interface {
	Name() string
	Enrich(ctx context.Context, opp *types.Opportunity) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Fn           func(ctx context.Context, opp *types.Opportunity) error
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Enrich(ctx context.Context, opp *types.Opportunity) error {
	return p.Fn(ctx, opp)
}

// Registry applies a fixed sequence of providers to each opportunity.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	logger    *zap.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends a provider. Providers run in registration order.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Apply runs every provider against the opportunity. Provider errors are
// logged and skipped; the opportunity always comes back usable.
func (r *Registry) Apply(ctx context.Context, opp *types.Opportunity) {
	r.mu.RLock()
	providers := r.providers
	r.mu.RUnlock()

	for _, p := range providers {
		if err := p.Enrich(ctx, opp); err != nil {
			ProviderErrorsTotal.WithLabelValues(p.Name()).Inc()
			r.logger.Debug("enrichment-provider-failed",
				zap.String("provider", p.Name()),
				zap.String("market_id", opp.MarketID),
				zap.Error(err))
			continue
		}
		ProviderAppliedTotal.WithLabelValues(p.Name()).Inc()
	}
}
