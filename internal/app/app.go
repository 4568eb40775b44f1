package app

import (
	"context"
	"sync"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/engine"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/enrichment"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/risk"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/storage"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/config"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/healthprobe"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	bookFeed      *enrichment.BookFeed
	riskManager   *risk.Manager
	engine        *engine.Engine
	storage       storage.Storage
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	Strategies []string // For debugging: restrict to a subset of strategies
}
