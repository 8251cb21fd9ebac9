package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ptslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BookingAttemptsTotal counts confirmation outcomes: created, slot_taken,
	// unavailable, failed.
	BookingAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptslot_booking_attempts_total",
			Help: "Booking confirmation attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ptslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SlotQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptslot_slot_queries_total",
			Help: "Slot listing queries by day kind (open, holiday, day_off)",
		},
		[]string{"day"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptslot_notifications_total",
			Help: "Notification deliveries by channel and status",
		},
		[]string{"channel", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ptslot_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	SessionCheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptslot_session_checkins_total",
			Help: "Check-ins by result (consumed, no_sessions, failed)",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingAttempt(outcome string) {
	BookingAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordSlotQuery(day string) {
	SlotQueriesTotal.WithLabelValues(day).Inc()
}

func RecordNotification(channel, status string) {
	NotificationsTotal.WithLabelValues(channel, status).Inc()
}

func SetNotificationQueueLength(n int64) {
	NotificationQueueLength.Set(float64(n))
}

func RecordCheckin(result string) {
	SessionCheckinsTotal.WithLabelValues(result).Inc()
}
