package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"status", "accommodation_type"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_booking_transitions_total",
			Help: "Total number of booking status transitions",
		},
		[]string{"from", "to"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_booking_rejections_total",
			Help: "Total number of rejected booking operations by reason",
		},
		[]string{"reason"},
	)

	AllowanceDaysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_allowance_days_total",
			Help: "Stay-days debited from or credited to member allowances",
		},
		[]string{"direction"},
	)

	TxRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socio_tx_retries_total",
			Help: "Total number of retried serializable transactions",
		},
	)

	TxConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socio_tx_conflicts_total",
			Help: "Total number of transactions abandoned after exhausting retries",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "socio_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ReportCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socio_report_cache_total",
			Help: "Report snapshot cache lookups",
		},
		[]string{"report", "result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status, accommodationType string) {
	BookingsTotal.WithLabelValues(status, accommodationType).Inc()
}

func RecordTransition(from, to string) {
	BookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordRejection(reason string) {
	BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordDebit(days int) {
	AllowanceDaysTotal.WithLabelValues("debit").Add(float64(days))
}

func RecordCredit(days int) {
	AllowanceDaysTotal.WithLabelValues("credit").Add(float64(days))
}

func RecordTxRetry() {
	TxRetriesTotal.Inc()
}

func RecordTxConflict() {
	TxConflictsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordReportCache(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReportCacheTotal.WithLabelValues(report, result).Inc()
}
