// Package engine runs the scan, enrich, analyze, gate, size, execute cycle
// across every registered strategy.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/risk"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/strategy"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/storage"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

const recentSignalCapacity = 100

// MarketSource provides the filtered market universe for a cycle.
type MarketSource interface {
	Scan(ctx context.Context) ([]types.Market, error)
}

// Enricher attaches external data to an opportunity before analysis.
type Enricher interface {
	Apply(ctx context.Context, opp *types.Opportunity)
}

// Account exposes the bankroll and open positions used for gating and
// sizing. The paper client implements it; live setups can supply a static
// bankroll.
type Account interface {
	Balance() float64
	Positions() []types.Position
}

// StaticAccount is an Account with a fixed bankroll and no position
// tracking.
type StaticAccount struct {
	Bankroll float64
}

func (a StaticAccount) Balance() float64            { return a.Bankroll }
func (a StaticAccount) Positions() []types.Position { return nil }

// Config holds engine configuration.
type Config struct {
	Source       MarketSource
	Registry     *strategy.Registry
	Enricher     Enricher
	Risk         *risk.Manager
	Kelly        *risk.Kelly
	Client       strategy.OrderClient
	Account      Account
	Storage      storage.Storage
	ScanInterval time.Duration
	Logger       *zap.Logger
}

// Engine orchestrates the trading cycle.
type Engine struct {
	source       MarketSource
	registry     *strategy.Registry
	enricher     Enricher
	risk         *risk.Manager
	kelly        *risk.Kelly
	client       strategy.OrderClient
	account      Account
	storage      storage.Storage
	scanInterval time.Duration
	logger       *zap.Logger

	mu     sync.RWMutex
	recent []types.Signal
}

// New creates an engine.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("market source cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if cfg.Risk == nil {
		return nil, fmt.Errorf("risk manager cannot be nil")
	}
	if cfg.Kelly == nil {
		return nil, fmt.Errorf("kelly sizer cannot be nil")
	}
	if cfg.Account == nil {
		return nil, fmt.Errorf("account cannot be nil")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Engine{
		source:       cfg.Source,
		registry:     cfg.Registry,
		enricher:     cfg.Enricher,
		risk:         cfg.Risk,
		kelly:        cfg.Kelly,
		client:       cfg.Client,
		account:      cfg.Account,
		storage:      cfg.Storage,
		scanInterval: cfg.ScanInterval,
		logger:       cfg.Logger,
	}, nil
}

// Run executes cycles on the configured interval until the context is
// cancelled. Cycle errors are logged; the loop keeps going.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("engine-starting",
		zap.Duration("scan-interval", e.scanInterval),
		zap.Int("strategies", len(e.registry.List())))

	ticker := time.NewTicker(e.scanInterval)
	defer ticker.Stop()

	// First cycle immediately, then on the ticker.
	if err := e.Cycle(ctx); err != nil {
		e.logger.Error("cycle-error", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine-stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := e.Cycle(ctx); err != nil {
				e.logger.Error("cycle-error", zap.Error(err))
			}
		}
	}
}

// Cycle runs one full pass: fetch markets once, then fan out per strategy.
func (e *Engine) Cycle(ctx context.Context) error {
	start := time.Now()

	markets, err := e.source.Scan(ctx)
	if err != nil {
		return fmt.Errorf("market scan: %w", err)
	}

	bankroll := e.account.Balance()
	positions := e.account.Positions()

	e.logger.Info("cycle-started",
		zap.Int("markets", len(markets)),
		zap.Float64("bankroll", bankroll),
		zap.Int("open-positions", len(positions)))

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range e.registry.All() {
		s := s
		g.Go(func() error {
			e.runStrategy(gctx, s, markets, bankroll, positions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	CyclesTotal.Inc()
	CycleDuration.Observe(time.Since(start).Seconds())

	e.logger.Info("cycle-complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// runStrategy drives one strategy through a cycle. Strategy declines are
// silent; only infrastructure failures are logged.
func (e *Engine) runStrategy(ctx context.Context, s strategy.Strategy, markets []types.Market, bankroll float64, positions []types.Position) {
	opps := s.Scan(markets)
	if len(opps) == 0 {
		return
	}

	e.logger.Debug("strategy-scan",
		zap.String("strategy", s.Name()),
		zap.Int("opportunities", len(opps)))

	for i := range opps {
		opp := opps[i]
		if e.enricher != nil {
			e.enricher.Apply(ctx, &opp)
		}

		sig, ok := s.Analyze(opp)
		if !ok {
			continue
		}

		e.recordSignal(sig)
		if err := e.storage.StoreSignal(ctx, &sig); err != nil {
			e.logger.Warn("store-signal-failed", zap.Error(err))
		}

		if !e.risk.CanTrade(sig, bankroll, positions) {
			continue
		}

		size := e.sizeSignal(sig, bankroll)
		if size <= 0 {
			continue
		}

		order, ok := s.Execute(ctx, sig, size, e.client)
		if !ok {
			continue
		}

		OrdersExecutedTotal.WithLabelValues(s.Name()).Inc()
		if err := e.storage.StoreOrder(ctx, &order); err != nil {
			e.logger.Warn("store-order-failed", zap.Error(err))
		}

		e.logger.Info("order-executed",
			zap.String("strategy", s.Name()),
			zap.String("market_id", sig.MarketID),
			zap.String("side", string(order.Side)),
			zap.Float64("price", order.Price),
			zap.Float64("size", order.Size))
	}
}

// sizeSignal converts a signal into a token quantity. A sell of YES at p
// is equivalent to buying the complementary outcome at 1-p, so sells are
// sized on the mirrored probabilities. The risk cap bounds the quantity.
func (e *Engine) sizeSignal(sig types.Signal, bankroll float64) float64 {
	var amount float64
	if sig.Side == types.SideSell {
		amount = e.kelly.BetAmount(bankroll, 1-sig.EstimatedProb, 1-sig.MarketPrice)
	} else {
		amount = e.kelly.BetAmount(bankroll, sig.EstimatedProb, sig.MarketPrice)
	}
	if amount <= 0 || sig.MarketPrice <= 0 {
		return 0
	}

	size := amount / sig.MarketPrice
	if maxSize := e.risk.MaxPositionSize(bankroll, sig.MarketPrice); size > maxSize {
		size = maxSize
	}
	return size
}

func (e *Engine) recordSignal(sig types.Signal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recent = append(e.recent, sig)
	if len(e.recent) > recentSignalCapacity {
		e.recent = e.recent[len(e.recent)-recentSignalCapacity:]
	}
}

// RecentSignals returns the most recent signals, newest last.
func (e *Engine) RecentSignals() []types.Signal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]types.Signal, len(e.recent))
	copy(out, e.recent)
	return out
}
