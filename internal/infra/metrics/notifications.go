package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(notificationsSentTotal, notificationsFailedTotal) }

var notificationsSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Notifications handed to a gateway, labeled by channel and kind.",
	},
	[]string{"channel", "kind"}, // channel: 'email', 'push', 'sms'
)

var notificationsFailedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Notifications a gateway refused, labeled by channel.",
	},
	[]string{"channel"},
)

func IncNotificationSent(channel, kind string) {
	notificationsSentTotal.WithLabelValues(norm(channel), norm(kind)).Inc()
}

func IncNotificationFailed(channel string) {
	notificationsFailedTotal.WithLabelValues(norm(channel)).Inc()
}
