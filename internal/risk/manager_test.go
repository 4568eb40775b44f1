package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(&Config{
		MaxPositionPct:   DefaultMaxPositionPct,
		MaxDailyLossPct:  DefaultMaxDailyLossPct,
		MaxOpenPositions: DefaultMaxOpenPositions,
		MinEdge:          DefaultMinEdge,
		Logger:           zap.NewNop(),
	})
	require.NoError(t, err)
	return m
}

func buySignal(marketID string, estimated, price float64) types.Signal {
	return types.Signal{
		MarketID:      marketID,
		TokenID:       marketID + "-yes",
		Side:          types.SideBuy,
		EstimatedProb: estimated,
		MarketPrice:   price,
		StrategyName:  "test",
	}
}

func TestNewManagerValidation(t *testing.T) {
	valid := Config{
		MaxPositionPct:   0.10,
		MaxDailyLossPct:  0.05,
		MaxOpenPositions: 20,
		MinEdge:          0.05,
		Logger:           zap.NewNop(),
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "nil-logger", mutate: func(c *Config) { c.Logger = nil }},
		{name: "zero-position-pct", mutate: func(c *Config) { c.MaxPositionPct = 0 }},
		{name: "position-pct-above-one", mutate: func(c *Config) { c.MaxPositionPct = 1.5 }},
		{name: "zero-daily-loss-pct", mutate: func(c *Config) { c.MaxDailyLossPct = 0 }},
		{name: "zero-open-positions", mutate: func(c *Config) { c.MaxOpenPositions = 0 }},
		{name: "negative-min-edge", mutate: func(c *Config) { c.MinEdge = -0.01 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			_, err := NewManager(&cfg)
			assert.Error(t, err)
		})
	}

	_, err := NewManager(nil)
	assert.Error(t, err)
}

func TestCanTradeEdgeGate(t *testing.T) {
	m := newTestManager(t)

	assert.True(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, nil))
	assert.False(t, m.CanTrade(buySignal("m1", 0.53, 0.50), 10000, nil))

	// Sell signals carry negative edge; the magnitude is what counts.
	sell := buySignal("m1", 0.40, 0.50)
	sell.Side = types.SideSell
	assert.True(t, m.CanTrade(sell, 10000, nil))
}

func TestCanTradeMaxOpenPositions(t *testing.T) {
	m := newTestManager(t)

	positions := make([]types.Position, DefaultMaxOpenPositions)
	for i := range positions {
		positions[i] = types.Position{MarketID: "other"}
	}

	assert.False(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, positions))
	assert.True(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, positions[:DefaultMaxOpenPositions-1]))
}

func TestCanTradeDailyLossCap(t *testing.T) {
	m := newTestManager(t)

	m.RecordLoss(400)
	assert.True(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, nil))

	m.RecordLoss(100) // hits 10000 * 0.05
	assert.False(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, nil))

	m.ResetDaily()
	assert.True(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, nil))
}

func TestCanTradeOnePositionPerMarket(t *testing.T) {
	m := newTestManager(t)

	positions := []types.Position{{MarketID: "m1"}}
	assert.False(t, m.CanTrade(buySignal("m1", 0.60, 0.50), 10000, positions))
	assert.True(t, m.CanTrade(buySignal("m2", 0.60, 0.50), 10000, positions))
}

func TestRecordLossIgnoresNonPositive(t *testing.T) {
	m := newTestManager(t)

	m.RecordLoss(-50)
	m.RecordLoss(0)
	assert.Zero(t, m.DailyLoss())

	m.RecordLoss(25)
	assert.InDelta(t, 25, m.DailyLoss(), 1e-9)
}

func TestMaxPositionSize(t *testing.T) {
	m := newTestManager(t)

	assert.InDelta(t, 2000, m.MaxPositionSize(10000, 0.50), 1e-9)
	assert.Zero(t, m.MaxPositionSize(10000, 0))
}
