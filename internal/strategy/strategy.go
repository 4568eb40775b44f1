// Package strategy defines the scan/analyze/execute contract every scoring
// module implements, the generic threshold engine behind the single-market
// modules, and the cross-market aggregation strategies.
package strategy

import (
	"context"
	"strings"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// OrderClient is the order-submission boundary. PlaceOrder is a blocking,
// non-idempotent call with no built-in retry; those concerns belong to the
// client implementation.
type OrderClient interface {
	PlaceOrder(ctx context.Context, tokenID string, side types.Side, price, size float64, strategyName string) (types.Order, error)
}

// Strategy is the uniform three-stage contract: filter candidate markets,
// score them into a directional probability estimate, and optionally
// submit an order. Scan and Analyze are pure; every failure mode is a
// decline expressed through the boolean return, never an error.
type Strategy interface {
	Name() string
	Tier() string
	ID() int
	RequiredData() []string

	// Scan filters a market batch into zero or more opportunities,
	// preserving the relative order of input markets. Inactive markets are
	// always skipped.
	Scan(markets []types.Market) []types.Opportunity

	// Analyze scores one opportunity. It declines when a required
	// enrichment field is absent or the computed edge is below the
	// strategy's minimum magnitude.
	Analyze(opp types.Opportunity) (types.Signal, bool)

	// Execute forwards the signal to the order client verbatim: token,
	// side, the signal's market price (not a fresh quote), size, and the
	// strategy name for attribution. A nil client is a decline, not an
	// error.
	Execute(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool)
}

// executeSignal is the shared Execute implementation. A single best-effort
// call: client failures become declines.
func executeSignal(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool) {
	if client == nil {
		return types.Order{}, false
	}
	order, err := client.PlaceOrder(ctx, sig.TokenID, sig.Side, sig.MarketPrice, size, sig.StrategyName)
	if err != nil {
		OrdersRejectedTotal.WithLabelValues(sig.StrategyName).Inc()
		return types.Order{}, false
	}
	OrdersPlacedTotal.WithLabelValues(sig.StrategyName).Inc()
	return order, true
}

// matchesKeyword reports whether the description mentions any keyword.
func matchesKeyword(description string, keywords []string) bool {
	desc := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func clampProb(p float64) float64 {
	if p < 0.01 {
		return 0.01
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
