// Package risk sizes positions with a fractional Kelly criterion and gates
// trade intent behind portfolio-level limits.
package risk

import "math"

// Default Kelly parameters. Quarter Kelly keeps variance tolerable on noisy
// probability estimates; the cap bounds any single bet regardless of edge.
const (
	DefaultKellyFraction = 0.25
	DefaultMaxFraction   = 0.06
)

// Kelly computes bet sizes from an estimated probability and the market
// price of a binary outcome token.
type Kelly struct {
	fraction    float64
	maxFraction float64
}

// NewKelly creates a sizer. Non-positive arguments fall back to the
// defaults.
func NewKelly(fraction, maxFraction float64) *Kelly {
	if fraction <= 0 {
		fraction = DefaultKellyFraction
	}
	if maxFraction <= 0 {
		maxFraction = DefaultMaxFraction
	}
	return &Kelly{fraction: fraction, maxFraction: maxFraction}
}

// FullKelly returns the unscaled Kelly fraction for buying at marketPrice
// with win probability p. Zero when there is no positive edge.
func (k *Kelly) FullKelly(p, marketPrice float64) float64 {
	if p <= marketPrice || marketPrice >= 1 {
		return 0
	}
	f := (p - marketPrice) / (1 - marketPrice)
	return math.Max(0, f)
}

// HalfKelly returns half the full Kelly fraction.
func (k *Kelly) HalfKelly(p, marketPrice float64) float64 {
	return k.FullKelly(p, marketPrice) * 0.5
}

// OptimalFraction scales full Kelly by the configured fraction and applies
// the per-bet cap.
func (k *Kelly) OptimalFraction(p, marketPrice float64) float64 {
	f := k.FullKelly(p, marketPrice) * k.fraction
	return math.Min(f, k.maxFraction)
}

// BetAmount converts the optimal fraction into a dollar amount of the
// bankroll.
func (k *Kelly) BetAmount(bankroll, p, marketPrice float64) float64 {
	return bankroll * k.OptimalFraction(p, marketPrice)
}
