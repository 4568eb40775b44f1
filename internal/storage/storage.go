// Package storage persists emitted signals and placed orders.
package storage

import (
	"context"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// Storage is the interface for recording signals and orders.
type Storage interface {
	// StoreSignal records an emitted trading signal.
	StoreSignal(ctx context.Context, sig *types.Signal) error

	// StoreOrder records a placed order.
	StoreOrder(ctx context.Context, order *types.Order) error

	// Close closes the storage connection.
	Close() error
}
