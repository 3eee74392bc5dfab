package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrderPlaceDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dinesmart_order_place_latency_seconds",
		Help:    "Latency of the order placement endpoint",
		Buckets: prometheus.DefBuckets,
	})

	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dinesmart_orders_placed_total",
		Help: "Total orders accepted",
	})

	OrdersRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dinesmart_orders_rejected_total",
		Help: "Orders refused for stock or availability reasons",
	})

	AuthFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dinesmart_auth_failures_total",
		Help: "Failed logins and rejected tokens",
	})
)

func Init() {
	prometheus.MustRegister(OrderPlaceDuration, OrdersPlacedTotal, OrdersRejectedTotal, AuthFailuresTotal)
}
