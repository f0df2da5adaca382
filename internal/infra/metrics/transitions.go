package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(statusTransitionsTotal, statusTransitionsRejectedTotal) }

var statusTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_status_transitions_total",
		Help: "Applied status transitions, labeled by (from, to) pair.",
	},
	[]string{"from", "to"},
)

var statusTransitionsRejectedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_status_transitions_rejected_total",
		Help: "Status transitions refused by the lifecycle rules.",
	},
	[]string{"from", "to"},
)

func IncTransition(from, to string) {
	statusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func IncTransitionRejected(from, to string) {
	statusTransitionsRejectedTotal.WithLabelValues(from, to).Inc()
}
