package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammad-safakhou/grounded/config"
)

// Telemetry exposes pipeline counters on the Prometheus registry. All
// methods are safe on a nil receiver so components can run without metrics.
type Telemetry struct {
	requests    *prometheus.CounterVec
	searches    *prometheus.CounterVec
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewTelemetry registers the pipeline collectors on the default registry.
// Returns nil when telemetry is disabled.
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	if !cfg.Enabled {
		return nil
	}
	return NewTelemetryWith(prometheus.DefaultRegisterer)
}

// NewTelemetryWith registers collectors on the given registerer (tests use a
// private registry to avoid duplicate registration).
func NewTelemetryWith(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grounded_requests_total",
			Help: "Answer requests by outcome.",
		}, []string{"outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grounded_search_requests_total",
			Help: "Web search calls by outcome.",
		}, []string{"outcome"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grounded_generation_attempts_total",
			Help: "Completion attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grounded_answer_duration_seconds",
			Help:    "End-to-end answer latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(t.requests, t.searches, t.generations, t.duration)
	return t
}

func (t *Telemetry) RecordRequest(outcome string, elapsed time.Duration) {
	if t == nil {
		return
	}
	t.requests.WithLabelValues(outcome).Inc()
	t.duration.Observe(elapsed.Seconds())
}

func (t *Telemetry) RecordSearch(outcome string) {
	if t == nil {
		return
	}
	t.searches.WithLabelValues(outcome).Inc()
}

func (t *Telemetry) RecordGeneration(outcome string) {
	if t == nil {
		return
	}
	t.generations.WithLabelValues(outcome).Inc()
}
