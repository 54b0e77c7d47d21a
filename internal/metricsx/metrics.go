// Package metricsx: counter & histogram Prometheus utk engine.
package metricsx

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OrdersPlaced  *prometheus.CounterVec // label status: ok | insufficient_stock | not_found | invalid_argument | storage_failure
	Transfers     *prometheus.CounterVec
	SettleLatency *prometheus.HistogramVec
}

func New(service string) *Metrics {
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drinks",
		Subsystem: service,
		Name:      "orders_placed_total",
		Help:      "Total order placement attempts by outcome.",
	}, []string{"status"})
	transfers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drinks",
		Subsystem: service,
		Name:      "stock_transfers_total",
		Help:      "Total stock transfer attempts by outcome.",
	}, []string{"status"})
	settleLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "drinks",
		Subsystem: service,
		Name:      "settlement_duration_ms",
		Help:      "Settlement transaction latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"op"})

	prometheus.MustRegister(ordersPlaced, transfers, settleLatency)
	return &Metrics{OrdersPlaced: ordersPlaced, Transfers: transfers, SettleLatency: settleLatency}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
