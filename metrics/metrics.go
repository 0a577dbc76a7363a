// Package metrics exposes the engine's Prometheus counters and
// histograms: order admissions, trades, trade quantities, auction
// outcomes, and inbound queue depth.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every counter/gauge/histogram this engine reports.
// Grounded on the Prometheus registry pattern used across the retrieval
// pack's observability code, scoped to this engine's own registry rather
// than the global default so multiple Engines in one process don't
// collide.
type Metrics struct {
	Registry *prometheus.Registry

	OrdersAdmitted  *prometheus.CounterVec
	TradesExecuted  *prometheus.CounterVec
	TradeQuantity   *prometheus.HistogramVec
	AuctionOutcomes *prometheus.CounterVec
	QueueDepth      *prometheus.GaugeVec
}

// New builds a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		OrdersAdmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cdaflow",
			Name:      "orders_admitted_total",
			Help:      "Orders admitted into the queue, by symbol and order type.",
		}, []string{"symbol", "type"}),
		TradesExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cdaflow",
			Name:      "trades_executed_total",
			Help:      "Trades executed by the crossing engine, by symbol.",
		}, []string{"symbol"}),
		TradeQuantity: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cdaflow",
			Name:      "trade_quantity",
			Help:      "Distribution of executed trade quantities, by symbol.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"symbol"}),
		AuctionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cdaflow",
			Name:      "auction_outcomes_total",
			Help:      "Batch auction windows, by symbol and whether a cross was found.",
		}, []string{"symbol", "crossed"}),
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cdaflow",
			Name:      "queue_depth",
			Help:      "Current number of orders waiting in a symbol's inbound queue.",
		}, []string{"symbol"}),
	}

	reg.MustRegister(m.OrdersAdmitted, m.TradesExecuted, m.TradeQuantity, m.AuctionOutcomes, m.QueueDepth)
	return m
}

// Handler returns an http.Handler exposing this registry in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Set reports the current inbound queue depth for symbol. It satisfies
// matching.DepthGauge so ScheduledProcessor can report depth without the
// matching package importing prometheus types directly.
func (m *Metrics) Set(symbol string, depth float64) {
	m.QueueDepth.WithLabelValues(symbol).Set(depth)
}
