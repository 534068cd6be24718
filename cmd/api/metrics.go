// File: cmd/api/metrics.go
package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
	outcomeOK      = "ok"
)

// formMetrics counts form submissions. Each app owns its registry.
type formMetrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func newFormMetrics() *formMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &formMetrics{
		registry: registry,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vuelos",
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Form submissions by form and outcome.",
		}, []string{"form", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vuelos",
			Subsystem: "forms",
			Name:      "submit_duration_seconds",
			Help:      "Time spent validating and submitting a form.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
	}
}

func (m *formMetrics) observe(form, outcome string, start time.Time) time.Duration {
	elapsed := time.Since(start)
	m.submissions.WithLabelValues(form, outcome).Inc()
	m.duration.WithLabelValues(form).Observe(elapsed.Seconds())
	return elapsed
}

func (m *formMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
