package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var reqCnt = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "community_http_requests_total",
	Help: "A counter for requests to the API.",
}, []string{"code", "method", "path"})

var reqDur = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "community_http_request_duration_seconds",
	Help:    "A histogram of latencies for requests.",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"code", "method", "path"})

// Metrics records request counts and latencies. The path label is the
// matched ServeMux pattern, so it must wrap the mux directly.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(wrapped.statusCode)
		reqCnt.WithLabelValues(code, r.Method, path).Inc()
		reqDur.WithLabelValues(code, r.Method, path).Observe(time.Since(start).Seconds())
	})
}
