package app

import (
	"context"
	"fmt"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/engine"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/enrichment"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/execution"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/risk"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/scanner"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/storage"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/strategy"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/cache"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/config"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/healthprobe"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Initialize components
	healthChecker := setupHealthChecker()

	// Setup cache
	marketCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	marketScanner, err := setupScanner(cfg, logger, marketCache)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup scanner: %w", err)
	}

	bookFeed, enricher := setupEnrichment(cfg, logger)

	// Setup storage
	signalStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	// Setup risk manager and sizer
	riskManager, err := setupRiskManager(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup risk manager: %w", err)
	}
	kelly := risk.NewKelly(cfg.KellyFraction, cfg.KellyMaxFraction)

	// Setup order client and account
	orderClient, account, err := setupExecution(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup execution: %w", err)
	}

	// Setup strategy registry
	registry, err := setupRegistry(cfg, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup registry: %w", err)
	}

	// Setup engine
	tradingEngine, err := engine.New(&engine.Config{
		Source:       newSubscribingSource(marketScanner, bookFeed, logger),
		Registry:     registry,
		Enricher:     enricher,
		Risk:         riskManager,
		Kelly:        kelly,
		Client:       orderClient,
		Account:      account,
		Storage:      signalStorage,
		ScanInterval: cfg.CycleInterval,
		Logger:       logger,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup engine: %w", err)
	}

	// Setup HTTP server (serves recent signals from the engine)
	httpServer := setupHTTPServer(cfg, logger, healthChecker, tradingEngine)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		bookFeed:      bookFeed,
		riskManager:   riskManager,
		engine:        tradingEngine,
		storage:       signalStorage,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	tradingEngine *engine.Engine,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		SignalSource:  tradingEngine,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items (1000 markets)
		MaxCost:     1000,  // Maximum 1000 items in cache
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupScanner(cfg *config.Config, logger *zap.Logger, marketCache cache.Cache) (*scanner.Scanner, error) {
	client := scanner.NewClient(cfg.PolymarketGammaURL, logger)
	return scanner.New(&scanner.Config{
		Fetcher:      client,
		MinVolume:    cfg.ScannerMinVolume,
		MinLiquidity: cfg.ScannerMinLiquidity,
		Categories:   cfg.ScannerCategories,
		FetchLimit:   cfg.ScannerFetchLimit,
		SnapshotTTL:  cfg.ScannerSnapshotTTL,
		Cache:        marketCache,
		Logger:       logger,
	})
}

func setupEnrichment(cfg *config.Config, logger *zap.Logger) (*enrichment.BookFeed, *enrichment.Registry) {
	bookFeed := enrichment.NewBookFeed(enrichment.FeedConfig{
		URL:          cfg.PolymarketWSURL,
		DialTimeout:  cfg.WSDialTimeout,
		PingInterval: cfg.WSPingInterval,
		Backoff: enrichment.BackoffConfig{
			InitialDelay: cfg.WSReconnectInitialDelay,
			MaxDelay:     cfg.WSReconnectMaxDelay,
			Multiplier:   cfg.WSReconnectBackoffMult,
			Jitter:       cfg.WSReconnectJitter,
		},
		Logger: logger,
	})

	registry := enrichment.NewRegistry(logger)
	registry.Register(bookFeed)

	return bookFeed, registry
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}

func setupRiskManager(cfg *config.Config, logger *zap.Logger) (*risk.Manager, error) {
	return risk.NewManager(&risk.Config{
		MaxPositionPct:   cfg.RiskMaxPositionPct,
		MaxDailyLossPct:  cfg.RiskMaxDailyLossPct,
		MaxOpenPositions: cfg.RiskMaxOpenPosition,
		MinEdge:          cfg.RiskMinEdge,
		Logger:           logger,
	})
}

func setupExecution(cfg *config.Config, logger *zap.Logger) (strategy.OrderClient, engine.Account, error) {
	if cfg.ExecutionMode == "live" {
		client, err := execution.NewCLOBClient(&execution.CLOBConfig{
			BaseURL:    cfg.PolymarketCLOBURL,
			APIKey:     cfg.PolymarketAPIKey,
			Secret:     cfg.PolymarketSecret,
			Passphrase: cfg.PolymarketPassphrase,
			PrivateKey: cfg.PolymarketPrivateKey,
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create live order client: %w", err)
		}
		return client, engine.StaticAccount{Bankroll: cfg.Bankroll}, nil
	}

	paperClient := execution.NewPaperClient(cfg.Bankroll, logger)
	return paperClient, paperClient, nil
}

func setupRegistry(cfg *config.Config, opts *Options) (*strategy.Registry, error) {
	names := cfg.Strategies
	if len(opts.Strategies) > 0 {
		names = opts.Strategies
	}

	full := strategy.DefaultRegistry()
	if len(names) == 0 {
		return full, nil
	}

	filtered := strategy.NewRegistry()
	for _, name := range names {
		s, err := full.Get(name)
		if err != nil {
			return nil, fmt.Errorf("resolve strategy: %w", err)
		}
		filtered.Register(s)
	}

	return filtered, nil
}
