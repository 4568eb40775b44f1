package strategy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpportunitiesScannedTotal counts opportunities produced by scan, per strategy.
	OpportunitiesScannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphalab_opportunities_scanned_total",
			Help: "Total number of opportunities produced by strategy scans",
		},
		[]string{"strategy"},
	)

	// SignalsEmittedTotal counts signals produced by analyze, per strategy.
	SignalsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphalab_signals_emitted_total",
			Help: "Total number of signals emitted by strategy analysis",
		},
		[]string{"strategy"},
	)

	// SignalsDeclinedTotal counts analyze declines, per strategy.
	SignalsDeclinedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphalab_signals_declined_total",
			Help: "Total number of opportunities declined at analysis",
		},
		[]string{"strategy"},
	)

	// OrdersPlacedTotal counts orders accepted by the order client, per strategy.
	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphalab_orders_placed_total",
			Help: "Total number of orders placed through execution",
		},
		[]string{"strategy"},
	)

	// OrdersRejectedTotal counts order client failures, per strategy.
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphalab_orders_rejected_total",
			Help: "Total number of orders rejected by the order client",
		},
		[]string{"strategy"},
	)

	// GroupSizeObserved tracks the sizes of comparison groups by grouping kind.
	GroupSizeObserved = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alphalab_group_size",
			Help:    "Size of market comparison groups",
			Buckets: []float64{2, 3, 4, 6, 8, 12, 16, 24, 32},
		},
		[]string{"kind"},
	)
)
