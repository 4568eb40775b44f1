package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/config"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:            "info",
		HTTPPort:            "0",
		PolymarketGammaURL:  "https://gamma-api.polymarket.com",
		PolymarketWSURL:     "wss://ws-subscriptions-clob.polymarket.com/ws/market",
		ScannerFetchLimit:   100,
		ScannerSnapshotTTL:  time.Minute,
		CycleInterval:       time.Minute,
		Bankroll:            10000,
		RiskMinEdge:         0.05,
		RiskMaxOpenPosition: 20,
		RiskMaxDailyLossPct: 0.05,
		RiskMaxPositionPct:  0.10,
		KellyFraction:       0.25,
		KellyMaxFraction:    0.06,
		ExecutionMode:       "paper",
		StorageMode:         "console",
	}
}

func TestNew_PaperMode(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop(), nil)
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.NotNil(t, a.engine)
	assert.NotNil(t, a.httpServer)
	assert.NotNil(t, a.bookFeed)
	assert.NotNil(t, a.riskManager)
	assert.NotNil(t, a.storage)

	// release the background context
	a.cancel()
}

func TestNew_StrategySubset(t *testing.T) {
	opts := &Options{Strategies: []string{"term_structure", "ensemble_consensus"}}

	a, err := New(testConfig(), zap.NewNop(), opts)
	require.NoError(t, err)
	a.cancel()
}

func TestNew_UnknownStrategy(t *testing.T) {
	opts := &Options{Strategies: []string{"does_not_exist"}}

	_, err := New(testConfig(), zap.NewNop(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestNew_ConfiguredStrategies(t *testing.T) {
	cfg := testConfig()
	cfg.Strategies = []string{"correlation_divergence"}

	a, err := New(cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	a.cancel()
}
