package risk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// Default portfolio limits.
const (
	DefaultMaxPositionPct   = 0.10
	DefaultMaxDailyLossPct  = 0.05
	DefaultMaxOpenPositions = 20
	DefaultMinEdge          = 0.05
)

// Config holds risk manager configuration.
type Config struct {
	MaxPositionPct   float64
	MaxDailyLossPct  float64
	MaxOpenPositions int
	MinEdge          float64
	Logger           *zap.Logger
}

// Manager enforces portfolio-level limits before any order is sized or
// placed. It is safe for concurrent use by strategy workers.
type Manager struct {
	maxPositionPct   float64
	maxDailyLossPct  float64
	maxOpenPositions int
	minEdge          float64
	logger           *zap.Logger

	mu        sync.RWMutex
	dailyLoss float64
}

// NewManager creates a risk manager with the given configuration.
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.MaxPositionPct <= 0 || cfg.MaxPositionPct > 1 {
		return nil, fmt.Errorf("max position pct must be in (0, 1]")
	}
	if cfg.MaxDailyLossPct <= 0 || cfg.MaxDailyLossPct > 1 {
		return nil, fmt.Errorf("max daily loss pct must be in (0, 1]")
	}
	if cfg.MaxOpenPositions <= 0 {
		return nil, fmt.Errorf("max open positions must be positive")
	}
	if cfg.MinEdge < 0 {
		return nil, fmt.Errorf("min edge cannot be negative")
	}

	return &Manager{
		maxPositionPct:   cfg.MaxPositionPct,
		maxDailyLossPct:  cfg.MaxDailyLossPct,
		maxOpenPositions: cfg.MaxOpenPositions,
		minEdge:          cfg.MinEdge,
		logger:           cfg.Logger,
	}, nil
}

// CanTrade reports whether a signal may proceed to sizing and execution.
// The edge check uses the magnitude so sell signals are gated the same way
// as buys.
func (m *Manager) CanTrade(sig types.Signal, bankroll float64, positions []types.Position) bool {
	edge := sig.Edge()
	if edge < 0 {
		edge = -edge
	}
	if edge < m.minEdge {
		m.block(sig, "edge-below-minimum",
			zap.Float64("edge", sig.Edge()),
			zap.Float64("min_edge", m.minEdge))
		return false
	}

	if len(positions) >= m.maxOpenPositions {
		m.block(sig, "max-open-positions",
			zap.Int("open_positions", len(positions)),
			zap.Int("max_open_positions", m.maxOpenPositions))
		return false
	}

	m.mu.RLock()
	dailyLoss := m.dailyLoss
	m.mu.RUnlock()
	if dailyLoss >= bankroll*m.maxDailyLossPct {
		m.block(sig, "daily-loss-cap",
			zap.Float64("daily_loss", dailyLoss),
			zap.Float64("cap", bankroll*m.maxDailyLossPct))
		return false
	}

	for i := range positions {
		if positions[i].MarketID == sig.MarketID {
			m.block(sig, "position-exists",
				zap.String("market_id", sig.MarketID))
			return false
		}
	}

	TradesAllowedTotal.Inc()
	return true
}

// MaxPositionSize returns the maximum token quantity a single position may
// hold at the given price.
func (m *Manager) MaxPositionSize(bankroll, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return bankroll * m.maxPositionPct / price
}

// RecordLoss accumulates a realized loss against today's cap.
func (m *Manager) RecordLoss(amount float64) {
	if amount <= 0 {
		return
	}
	m.mu.Lock()
	m.dailyLoss += amount
	loss := m.dailyLoss
	m.mu.Unlock()
	DailyLossGauge.Set(loss)
}

// DailyLoss returns the loss accumulated since the last reset.
func (m *Manager) DailyLoss() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dailyLoss
}

// ResetDaily clears the accumulated loss. Called at UTC midnight by the
// monitor loop, or manually from tests.
func (m *Manager) ResetDaily() {
	m.mu.Lock()
	m.dailyLoss = 0
	m.mu.Unlock()
	DailyLossGauge.Set(0)
	m.logger.Info("daily-loss-reset")
}

// Start runs the daily reset loop until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go m.resetLoop(ctx)
}

func (m *Manager) resetLoop(ctx context.Context) {
	for {
		now := time.Now().UTC()
		next := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			m.ResetDaily()
		}
	}
}

func (m *Manager) block(sig types.Signal, reason string, fields ...zap.Field) {
	TradesBlockedTotal.WithLabelValues(reason).Inc()
	fields = append(fields,
		zap.String("strategy", sig.StrategyName),
		zap.String("market_id", sig.MarketID))
	m.logger.Debug("trade-blocked-"+reason, fields...)
}
