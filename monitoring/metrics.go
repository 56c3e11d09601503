package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campuseats_orders_placed_total",
		Help: "Orders created through checkout.",
	})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campuseats_order_transitions_total",
		Help: "Order status transitions by target status.",
	}, []string{"to"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campuseats_notifications_sent_total",
		Help: "Notification rows inserted by type.",
	}, []string{"type"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campuseats_notification_failures_total",
		Help: "Notification inserts that failed and were dropped.",
	})
)

// StartMetricsServer exposes /metrics on its own listener, separate from
// the API port.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logrus.Infof("starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Error("metrics server error")
	}
}
