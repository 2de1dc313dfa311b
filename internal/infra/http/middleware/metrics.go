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

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads captured",
		},
		[]string{"source", "status"},
	)

	demoFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demo_fallbacks_total",
			Help: "Responses served from fallback data instead of a live dependency",
		},
		[]string{"route"},
	)

	onboardingCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_completed_total",
			Help: "Total number of completed onboarding flows",
		},
	)

	backendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_errors_total",
			Help: "Total number of remote backend errors",
		},
		[]string{"endpoint"},
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

func RecordLeadCaptured(source, status string) {
	leadsCaptured.WithLabelValues(source, status).Inc()
}

func RecordDemoFallback(route string) {
	demoFallbacks.WithLabelValues(route).Inc()
}

func RecordOnboardingCompleted() {
	onboardingCompleted.Inc()
}

func RecordBackendError(endpoint string) {
	backendErrors.WithLabelValues(endpoint).Inc()
}
