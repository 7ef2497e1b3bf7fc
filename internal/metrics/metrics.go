// Package metrics registers the Prometheus instruments exported by the
// service. Served on /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

var (
	// OrdersPlaced counts successfully committed order placements.
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Number of orders successfully placed.",
	})

	// OrderFailures counts placement attempts that did not commit, by reason.
	OrderFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_failures_total",
		Help:      "Number of rejected or failed order placements.",
	}, []string{"reason"})

	// StockMovements counts ledger transactions by direction and result.
	StockMovements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_movements_total",
		Help:      "Number of stock ledger transactions.",
	}, []string{"type", "result"})
)

var registered = false

// MustRegister registers all instruments with the default registry. Safe to
// call once from main; tests exercise services without registering.
func MustRegister() {
	if registered {
		return
	}
	prometheus.MustRegister(OrdersPlaced, OrderFailures, StockMovements)
	registered = true
}
