package enrichment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderAppliedTotal counts successful provider applications.
	ProviderAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_enrichment_applied_total",
		Help: "Total number of successful enrichment provider applications",
	}, []string{"provider"})

	// ProviderErrorsTotal counts provider failures, which are skipped.
	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_enrichment_errors_total",
		Help: "Total number of enrichment provider failures",
	}, []string{"provider"})

	// FeedConnected reports whether the book feed connection is up.
	FeedConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "alphalab_enrichment_feed_connected",
		Help: "Whether the market-channel WebSocket connection is established",
	})

	// FeedMessagesTotal counts market-channel messages by event type.
	FeedMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_enrichment_feed_messages_total",
		Help: "Total number of market-channel messages received",
	}, []string{"event_type"})

	// FeedReconnectsTotal counts reconnection attempts.
	FeedReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_enrichment_feed_reconnects_total",
		Help: "Total number of WebSocket reconnection attempts",
	})
)
