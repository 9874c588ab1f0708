package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streamkit/donation-notifier/internal/handler"
	custmw "github.com/streamkit/donation-notifier/internal/middleware"
)

func NewRouter(nh *handler.NotificationHandler, hh *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(custmw.MetricsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", nh.ListAll)
		r.Get("/unread", nh.ListUnread)
	})

	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
