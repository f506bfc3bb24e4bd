// Package metrics holds the process's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventpass"

// Registry is the registry exposed on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registration outcomes.
const (
	OutcomeRegistered = "registered"
	OutcomeDuplicate  = "duplicate"
	OutcomeNoEvent    = "event_not_found"
	OutcomeError      = "error"
)

// Delivery results.
const (
	ResultDelivered = "delivered"
	ResultFailed    = "failed"
)

var (
	Registrations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	FanoutDeliveries = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_deliveries_total",
			Help:      "Announcement deliveries by result",
		},
		[]string{"result"},
	)

	FanoutDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fanout_duration_seconds",
			Help:      "Wall time of one broadcast",
			Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	Toggles = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Event notification toggles",
		},
	)
)
