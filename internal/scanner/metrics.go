package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsFetchedTotal counts markets returned by the Gamma API.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_scanner_markets_fetched_total",
		Help: "Total number of markets fetched from the Gamma API",
	})

	// MarketsFilteredTotal counts markets dropped by the universe filters.
	MarketsFilteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_scanner_markets_filtered_total",
		Help: "Total number of markets dropped by volume, liquidity or category filters",
	})

	// ScanDuration observes end-to-end scan latency.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "alphalab_scanner_scan_duration_seconds",
		Help:    "Duration of a full market scan",
		Buckets: prometheus.DefBuckets,
	})
)
