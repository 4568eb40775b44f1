package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{logger: logger}
}

// StoreSignal pretty-prints a trading signal to console.
func (c *ConsoleStorage) StoreSignal(_ context.Context, sig *types.Signal) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📡 SIGNAL: %s\n", sig.StrategyName)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Market:     %s\n", sig.MarketID)
	fmt.Printf("Token:      %s\n", sig.TokenID)
	fmt.Printf("Side:       %s\n", sig.Side)
	fmt.Printf("Market px:  %.4f\n", sig.MarketPrice)
	fmt.Printf("Estimate:   %.4f (edge %+.4f)\n", sig.EstimatedProb, sig.Edge())
	fmt.Printf("Confidence: %.2f\n", sig.Confidence)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	return nil
}

// StoreOrder pretty-prints a placed order to console.
func (c *ConsoleStorage) StoreOrder(_ context.Context, order *types.Order) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("💰 ORDER: %s %s\n", order.Side, order.TokenID)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Order ID:  %s\n", order.OrderID)
	fmt.Printf("Strategy:  %s\n", order.StrategyName)
	fmt.Printf("Price:     %.4f\n", order.Price)
	fmt.Printf("Size:      %.2f\n", order.Size)
	fmt.Printf("Cost:      $%.2f\n", order.TotalCost())
	fmt.Printf("Status:    %s\n", order.Status)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
