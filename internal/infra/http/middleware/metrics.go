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

	interactionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_interactions_total",
			Help: "Total number of inbound interactions processed",
		},
		[]string{"source"},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_stage_transitions_total",
			Help: "Total number of funnel stage transitions",
		},
		[]string{"stage"},
	)

	nurtureMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_nurture_messages_total",
			Help: "Total number of nurture messages sent",
		},
	)

	operatorNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_operator_notifications_total",
			Help: "Total number of operator notifications sent",
		},
		[]string{"kind", "channel"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
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

func RecordInteraction(source string) {
	interactionsProcessed.WithLabelValues(source).Inc()
}

func RecordStageTransition(stage string) {
	stageTransitions.WithLabelValues(stage).Inc()
}

func RecordNurtureMessage() {
	nurtureMessages.Inc()
}

func RecordOperatorNotification(kind, channel string) {
	operatorNotifications.WithLabelValues(kind, channel).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
