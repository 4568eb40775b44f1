package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal counts completed engine cycles.
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_engine_cycles_total",
		Help: "Total number of completed scan cycles",
	})

	// CycleDuration observes end-to-end cycle latency.
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "alphalab_engine_cycle_duration_seconds",
		Help:    "Duration of a full engine cycle",
		Buckets: prometheus.DefBuckets,
	})

	// OrdersExecutedTotal counts executed orders by strategy.
	OrdersExecutedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_engine_orders_executed_total",
		Help: "Total number of orders executed by the engine",
	}, []string{"strategy"})
)
