// Package execution provides the order clients strategies trade through: a
// paper client that simulates fills against a local balance, and a live
// client that submits signed orders to the Polymarket CLOB.
package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// DefaultPaperBalance is the starting bankroll for paper trading.
const DefaultPaperBalance = 10000.0

// PaperClient simulates order execution against a local balance. Every
// order fills immediately at the requested price.
type PaperClient struct {
	logger *zap.Logger

	mu        sync.RWMutex
	balance   float64
	positions []types.Position
	orders    []types.Order
}

// NewPaperClient creates a paper client with the given starting balance.
// A non-positive balance falls back to the default.
func NewPaperClient(balance float64, logger *zap.Logger) *PaperClient {
	if balance <= 0 {
		balance = DefaultPaperBalance
	}
	return &PaperClient{balance: balance, logger: logger}
}

// PlaceOrder fills the order against the paper balance. Buys must be
// covered by the current balance.
func (c *PaperClient) PlaceOrder(_ context.Context, tokenID string, side types.Side, price, size float64, strategyName string) (types.Order, error) {
	if price <= 0 || size <= 0 {
		return types.Order{}, fmt.Errorf("invalid order: price %.4f size %.4f", price, size)
	}

	cost := price * size

	c.mu.Lock()
	defer c.mu.Unlock()

	if side == types.SideBuy && cost > c.balance {
		return types.Order{}, fmt.Errorf("insufficient balance: need %.2f, have %.2f", cost, c.balance)
	}

	// The client only sees the token, so the token stands in for the
	// market in its records.
	order := types.Order{
		MarketID:     tokenID,
		TokenID:      tokenID,
		Side:         side,
		Price:        price,
		Size:         size,
		StrategyName: strategyName,
		OrderID:      "paper_" + uuid.NewString(),
		Status:       "filled",
		Timestamp:    time.Now(),
	}

	if side == types.SideBuy {
		c.balance -= cost
		c.positions = append(c.positions, types.Position{
			MarketID:     tokenID,
			TokenID:      tokenID,
			Side:         side,
			EntryPrice:   price,
			Size:         size,
			CurrentPrice: price,
			StrategyName: strategyName,
		})
	} else {
		c.balance += cost
	}
	c.orders = append(c.orders, order)

	PaperOrdersTotal.WithLabelValues(string(side)).Inc()
	PaperBalance.Set(c.balance)

	c.logger.Info("paper-order-filled",
		zap.String("token_id", tokenID),
		zap.String("side", string(side)),
		zap.Float64("price", price),
		zap.Float64("size", size),
		zap.String("strategy", strategyName),
		zap.Float64("balance", c.balance))

	return order, nil
}

// Balance returns the current paper balance.
func (c *PaperClient) Balance() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance
}

// Positions returns a copy of the open paper positions.
func (c *PaperClient) Positions() []types.Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Position, len(c.positions))
	copy(out, c.positions)
	return out
}

// Orders returns a copy of all paper orders placed so far.
func (c *PaperClient) Orders() []types.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Order, len(c.orders))
	copy(out, c.orders)
	return out
}
