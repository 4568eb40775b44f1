package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaperOrdersTotal counts simulated fills by side.
	PaperOrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_execution_paper_orders_total",
		Help: "Total number of paper orders filled",
	}, []string{"side"})

	// PaperBalance tracks the simulated bankroll.
	PaperBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "alphalab_execution_paper_balance_usd",
		Help: "Current paper trading balance",
	})

	// LiveOrdersTotal counts accepted live orders by side.
	LiveOrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_execution_live_orders_total",
		Help: "Total number of live orders accepted by the CLOB",
	}, []string{"side"})

	// LiveOrdersFailedTotal counts rejected or failed live submissions.
	LiveOrdersFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_execution_live_orders_failed_total",
		Help: "Total number of live order submissions that failed",
	})
)
