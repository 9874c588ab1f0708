package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donationd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "donationd_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// DonationsProcessed counts consumed donation events by outcome
	DonationsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donationd_events_processed_total",
			Help: "Number of donation events processed, by outcome",
		},
		[]string{"outcome"},
	)

	// BroadcastsSent counts chat broadcast attempts by outcome
	BroadcastsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donationd_broadcasts_total",
			Help: "Number of chat broadcast attempts, by outcome",
		},
		[]string{"outcome"},
	)

	// BroadcastDuration measures chat server round-trip time
	BroadcastDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "donationd_broadcast_duration_seconds",
			Help:    "Duration of chat broadcast calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

func Init() {
	prometheus.MustRegister(
		HTTPRequests,
		RequestDuration,
		DonationsProcessed,
		BroadcastsSent,
		BroadcastDuration,
	)
}
