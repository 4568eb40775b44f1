// Package scanner fetches the tradable market universe from the Gamma API
// and filters it down to markets worth scoring.
package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/cache"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// DefaultSpikeThreshold is the absolute price move that counts as a spike.
const DefaultSpikeThreshold = 0.15

const snapshotCacheKey = "scanner:markets"

// MarketFetcher is the market source boundary; *Client implements it.
type MarketFetcher interface {
	FetchActiveMarkets(ctx context.Context, limit, offset int, orderBy string) ([]types.Market, error)
}

// Config holds scanner configuration.
type Config struct {
	Fetcher      MarketFetcher
	MinVolume    float64
	MinLiquidity float64
	Categories   []string // empty means all categories
	FetchLimit   int      // 0 fetches everything
	SnapshotTTL  time.Duration
	Cache        cache.Cache // optional snapshot/price cache
	Logger       *zap.Logger
}

// Scanner filters the market universe and tracks last-seen prices so
// callers can detect spikes between scans.
type Scanner struct {
	fetcher      MarketFetcher
	minVolume    float64
	minLiquidity float64
	categories   map[string]struct{}
	fetchLimit   int
	snapshotTTL  time.Duration
	cache        cache.Cache
	logger       *zap.Logger
}

// New creates a scanner.
func New(cfg *Config) (*Scanner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	var categories map[string]struct{}
	if len(cfg.Categories) > 0 {
		categories = make(map[string]struct{}, len(cfg.Categories))
		for _, c := range cfg.Categories {
			categories[c] = struct{}{}
		}
	}

	return &Scanner{
		fetcher:      cfg.Fetcher,
		minVolume:    cfg.MinVolume,
		minLiquidity: cfg.MinLiquidity,
		categories:   categories,
		fetchLimit:   cfg.FetchLimit,
		snapshotTTL:  cfg.SnapshotTTL,
		cache:        cfg.Cache,
		logger:       cfg.Logger,
	}, nil
}

// Scan fetches active markets and returns those passing the volume,
// liquidity and category filters. Within the snapshot TTL, a cached result
// is served instead of refetching.
func (s *Scanner) Scan(ctx context.Context) ([]types.Market, error) {
	if s.cache != nil && s.snapshotTTL > 0 {
		if v, ok := s.cache.Get(snapshotCacheKey); ok {
			if markets, ok := v.([]types.Market); ok {
				s.logger.Debug("scan-snapshot-cache-hit", zap.Int("markets", len(markets)))
				return markets, nil
			}
		}
	}

	start := time.Now()
	markets, err := s.fetcher.FetchActiveMarkets(ctx, s.fetchLimit, 0, "volume24hr")
	if err != nil {
		return nil, fmt.Errorf("fetch active markets: %w", err)
	}

	filtered := make([]types.Market, 0, len(markets))
	for i := range markets {
		if s.passesFilter(&markets[i]) {
			filtered = append(filtered, markets[i])
		}
	}
	MarketsFilteredTotal.Add(float64(len(markets) - len(filtered)))
	ScanDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("scan-complete",
		zap.Int("fetched", len(markets)),
		zap.Int("kept", len(filtered)),
		zap.Duration("elapsed", time.Since(start)))

	if s.cache != nil && s.snapshotTTL > 0 {
		s.cache.Set(snapshotCacheKey, filtered, s.snapshotTTL)
	}

	return filtered, nil
}

func (s *Scanner) passesFilter(m *types.Market) bool {
	if !m.Active {
		return false
	}
	if m.Volume < s.minVolume {
		return false
	}
	if m.Liquidity < s.minLiquidity {
		return false
	}
	if s.categories != nil {
		if _, ok := s.categories[m.Category]; !ok {
			return false
		}
	}
	return true
}

// IsPriceSpike reports whether the move between two observations meets the
// spike threshold.
func IsPriceSpike(prevPrice, currPrice, threshold float64) bool {
	diff := currPrice - prevPrice
	if diff < 0 {
		diff = -diff
	}
	return diff >= threshold
}

// UpdatePrice records the latest price for a market and returns the
// previous one, if any. Prices live in the shared cache so they survive
// across scan cycles but expire with it.
func (s *Scanner) UpdatePrice(marketID string, price float64) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	key := "scanner:price:" + marketID
	prev, ok := s.cache.Get(key)
	s.cache.Set(key, price, 0)
	if !ok {
		return 0, false
	}
	p, ok := prev.(float64)
	return p, ok
}
