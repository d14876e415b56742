package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"source"},
	)

	reservationClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_reservation_claims_total",
			Help: "Total number of reservation claim attempts",
		},
		[]string{"result"},
	)

	reservationReleases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_reservation_releases_total",
			Help: "Total number of reservation releases",
		},
	)

	remindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_reminders_total",
			Help: "Total number of follow-up reminders recorded",
		},
		[]string{"channel", "result"},
	)

	importRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_import_rows_total",
			Help: "Total number of bulk-import rows processed",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadCreated(source string) {
	leadsCreated.WithLabelValues(source).Inc()
}

func RecordReservationClaim(result string) {
	reservationClaims.WithLabelValues(result).Inc()
}

func RecordReservationRelease() {
	reservationReleases.Inc()
}

func RecordReminder(channel, result string) {
	remindersDispatched.WithLabelValues(channel, result).Inc()
}

func RecordImportRow(result string) {
	importRows.WithLabelValues(result).Inc()
}
