package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/streamkit/donation-notifier/internal/metrics"
)

// MetricsMiddleware records request counts and durations. It labels by the
// chi route pattern rather than the raw path to keep label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	h := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}
		status := strconv.Itoa(ww.Status())

		metrics.HTTPRequests.WithLabelValues(path, r.Method, status).Inc()
		metrics.RequestDuration.WithLabelValues(path, r.Method).Observe(duration)
	}

	return http.HandlerFunc(h)
}
