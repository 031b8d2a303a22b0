package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the service.
type Registry struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business
	BookingsCommittedTotal   prometheus.Counter
	BookingsCancelledTotal   prometheus.Counter
	StatusTransitionsTotal   *prometheus.CounterVec
	ExportsTotal             *prometheus.CounterVec
	ChatFallbackRepliesTotal prometheus.Counter
}

// NewRegistry initializes all metrics on the default registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		BookingsCommittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_bookings_committed_total",
				Help: "Bookings committed through the wizard",
			},
		),
		BookingsCancelledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_bookings_cancelled_total",
				Help: "Bookings cancelled by explicit user action",
			},
		),
		StatusTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_status_transitions_total",
				Help: "Schedule status transitions by kind and target status",
			},
			[]string{"kind", "status"},
		),
		ExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_exports_total",
				Help: "Spreadsheet exports by outcome",
			},
			[]string{"outcome"},
		),
		ChatFallbackRepliesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_chat_fallback_replies_total",
				Help: "Chat replies served from the fixed fallback",
			},
		),
	}
}
