package types

// Side is the direction of a trade.
type Side string

const (
	// SideBuy buys the referenced outcome token.
	SideBuy Side = "buy"
	// SideSell sells the referenced outcome token.
	SideSell Side = "sell"
)

// SideForEdge derives the trade direction from the sign of the edge:
// buy when the fair-value estimate exceeds the market price, sell
// otherwise.
func SideForEdge(estimatedProb, marketPrice float64) Side {
	if estimatedProb > marketPrice {
		return SideBuy
	}
	return SideSell
}

// Signal is a directional trading recommendation. Immutable once produced.
type Signal struct {
	MarketID      string             `json:"market_id"`
	TokenID       string             `json:"token_id"`
	Side          Side               `json:"side"`
	EstimatedProb float64            `json:"estimated_prob"`
	MarketPrice   float64            `json:"market_price"`
	Confidence    float64            `json:"confidence"`
	StrategyName  string             `json:"strategy_name"`
	Metadata      map[string]float64 `json:"metadata,omitempty"`
}

// Edge is the difference between the strategy's fair-value estimate and
// the observed market price.
func (s *Signal) Edge() float64 {
	return s.EstimatedProb - s.MarketPrice
}
