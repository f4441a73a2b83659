// Package metrics holds the Prometheus instrumentation the engine feeds on
// every tick: setups detected, orders submitted/filled, scale-in
// cancellations, open positions and paper equity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SetupsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcperp_setups_detected_total",
			Help: "Total number of strategy setups detected (by strategy).",
		},
		[]string{"strategy"},
	)

	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcperp_orders_submitted_total",
			Help: "Total number of orders submitted (by strategy).",
		},
		[]string{"strategy"},
	)

	OrdersFilled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcperp_orders_filled_total",
			Help: "Total number of orders filled (by strategy).",
		},
		[]string{"strategy"},
	)

	ScaleInCancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcperp_scale_in_cancellations_total",
			Help: "Total number of scale-in gate cancellation events (by strategy).",
		},
		[]string{"strategy"},
	)

	PositionsOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "btcperp_positions_open",
			Help: "Current number of open positions per strategy (0 or 1).",
		},
		[]string{"strategy"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "btcperp_equity",
			Help: "Current paper-broker equity.",
		},
	)
)

func init() {
	prometheus.MustRegister(SetupsDetected, OrdersSubmitted, OrdersFilled, ScaleInCancellations, PositionsOpen, EquityGauge)
}
