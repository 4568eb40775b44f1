package types

import "time"

// Order is the result of a successful execution request.
type Order struct {
	MarketID     string    `json:"market_id"`
	TokenID      string    `json:"token_id"`
	Side         Side      `json:"side"`
	Price        float64   `json:"price"`
	Size         float64   `json:"size"`
	StrategyName string    `json:"strategy_name"`
	OrderID      string    `json:"order_id,omitempty"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// TotalCost returns the notional cost of the order.
func (o *Order) TotalCost() float64 {
	return o.Price * o.Size
}

// Position is an open holding tracked by the risk layer.
type Position struct {
	MarketID     string  `json:"market_id"`
	TokenID      string  `json:"token_id"`
	Side         Side    `json:"side"`
	EntryPrice   float64 `json:"entry_price"`
	Size         float64 `json:"size"`
	CurrentPrice float64 `json:"current_price"`
	StrategyName string  `json:"strategy_name"`
}

// UnrealizedPnL returns the mark-to-market profit of the position.
func (p *Position) UnrealizedPnL() float64 {
	return (p.CurrentPrice - p.EntryPrice) * p.Size
}
