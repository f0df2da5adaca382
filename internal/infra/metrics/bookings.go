package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		bookingsCreatedTotal, bookingsAcceptedTotal, bookingAcceptConflictsTotal,
		bookingsCancelledTotal, bookingsCompletedTotal, bookingsExpiredTotal,
	)
}

var bookingsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created, labeled by job type and immediacy.",
	},
	[]string{"job_type", "immediate"},
)

var bookingsAcceptedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookings_accepted_total",
		Help: "Total number of bookings claimed by a translator.",
	},
)

var bookingAcceptConflictsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "booking_accept_conflicts_total",
		Help: "Accept attempts lost to a concurrent claim or a schedule clash.",
	},
)

var bookingsCancelledTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookings_cancelled_total",
		Help: "Total number of cancellations, labeled by who cancelled.",
	},
	[]string{"by"}, // 'customer', 'translator'
)

var bookingsCompletedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookings_completed_total",
		Help: "Total number of sessions ended successfully.",
	},
)

var bookingsExpiredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookings_expired_total",
		Help: "Pending bookings timed out by the expiry sweep.",
	},
)

func IncJobCreated(jobType string, immediate bool) {
	bookingsCreatedTotal.WithLabelValues(norm(jobType), strconv.FormatBool(immediate)).Inc()
}

func IncJobAccepted()        { bookingsAcceptedTotal.Inc() }
func IncJobAcceptConflict()  { bookingAcceptConflictsTotal.Inc() }
func IncJobCompleted()       { bookingsCompletedTotal.Inc() }
func IncJobCancelled(by string) {
	bookingsCancelledTotal.WithLabelValues(norm(by)).Inc()
}

func IncJobsExpired(n int) { bookingsExpiredTotal.Add(float64(n)) }
