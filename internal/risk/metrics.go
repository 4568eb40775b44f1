package risk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TradesAllowedTotal counts signals that passed every risk gate.
	TradesAllowedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alphalab_risk_trades_allowed_total",
		Help: "Total number of signals that passed all risk checks",
	})

	// TradesBlockedTotal counts blocked signals by the gate that fired.
	TradesBlockedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alphalab_risk_trades_blocked_total",
		Help: "Total number of signals blocked by risk checks",
	}, []string{"reason"})

	// DailyLossGauge tracks the realized loss accumulated today.
	DailyLossGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "alphalab_risk_daily_loss_usd",
		Help: "Realized loss accumulated since the last daily reset",
	})
)
