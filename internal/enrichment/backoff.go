package enrichment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BackoffConfig holds the configuration for exponential backoff
// reconnection.
type BackoffConfig struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64 // 0.2 = 20%
}

// withDefaults fills zero-valued fields with the production reconnect
// policy. A zero multiplier or delay would otherwise hammer the endpoint
// with immediate retries.
func (c BackoffConfig) withDefaults() BackoffConfig {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 1 * time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier < 1 {
		c.Multiplier = 2.0
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	return c
}

// backoff retries a connect function with exponential backoff and jitter.
type backoff struct {
	config  BackoffConfig
	logger  *zap.Logger
	mu      sync.Mutex
	current time.Duration
}

func newBackoff(cfg BackoffConfig, logger *zap.Logger) *backoff {
	return &backoff{config: cfg, logger: logger, current: cfg.InitialDelay}
}

// retry keeps attempting connectFunc until it succeeds or the context is
// cancelled.
func (b *backoff) retry(ctx context.Context, connectFunc func(context.Context) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		delay := b.next()
		b.logger.Info("attempting-reconnection", zap.Duration("backoff", delay))
		FeedReconnectsTotal.Inc()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		err := connectFunc(ctx)
		if err == nil {
			b.reset()
			b.logger.Info("reconnection-successful")
			return nil
		}

		b.logger.Warn("reconnection-failed", zap.Error(err))
		b.increment()
	}
}

func (b *backoff) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.config.InitialDelay
}

func (b *backoff) next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	jitter := rand.Float64() * b.config.Jitter
	return time.Duration(float64(b.current) * (1.0 + jitter))
}

func (b *backoff) increment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := time.Duration(float64(b.current) * b.config.Multiplier)
	if next > b.config.MaxDelay {
		next = b.config.MaxDelay
	}
	b.current = next
}
