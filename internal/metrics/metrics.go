// Package metrics defines the relay's Prometheus instrumentation.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts inbound requests by route and outcome code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concord_requests_total",
			Help: "Total number of inbound relay requests",
		},
		[]string{"route", "outcome"},
	)

	// ConsultDuration observes end-to-end council consult latency.
	ConsultDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "concord_consult_duration_milliseconds",
			Help:    "Council consult duration in milliseconds",
			Buckets: []float64{100, 500, 1000, 2000, 5000, 10000, 30000, 60000},
		},
	)

	// SeatFailures counts advisory calls that resolved to a failure marker.
	SeatFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concord_seat_failures_total",
			Help: "Total number of failed advisory seat calls",
		},
		[]string{"seat"},
	)

	// ForwardsTotal counts webhook forwards by tool and outcome.
	ForwardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concord_forwards_total",
			Help: "Total number of webhook forwards",
		},
		[]string{"tool", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ConsultDuration)
	prometheus.MustRegister(SeatFailures)
	prometheus.MustRegister(ForwardsTotal)
}
