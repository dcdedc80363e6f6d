// Package metrics counts pass outcomes in a prometheus registry that can be written to a
// node-exporter textfile
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ComponentsTotal
const (
	Classified = "classified"
	Skipped    = "skipped"
)

type Registry struct {
	ComponentsTotal *prometheus.CounterVec
	SkipsTotal      *prometheus.CounterVec
	MembersTotal    *prometheus.CounterVec
	PassDuration    *prometheus.HistogramVec
	PassesTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry holding only this application's metrics
func NewRegistry() (r *Registry) {
	r = &Registry{registry: prometheus.NewRegistry()}
	r.ComponentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gojoint_components_total",
			Help: "Components processed per pass and outcome",
		},
		[]string{"pass", "outcome"},
	)
	r.SkipsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gojoint_skips_total",
			Help: "Skipped components per pass and reason",
		},
		[]string{"pass", "reason"},
	)
	r.MembersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gojoint_output_members_total",
			Help: "Elements or nodes appended to each output collection",
		},
		[]string{"pass", "collection"},
	)
	r.PassDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gojoint_pass_duration_seconds",
			Help:    "Wall time of each pass",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
		[]string{"pass"},
	)
	r.PassesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gojoint_passes_total",
			Help: "Passes run, by status",
		},
		[]string{"pass", "status"},
	)
	return
}

func (r *Registry) RecordComponent(pass, outcome string) {
	r.ComponentsTotal.WithLabelValues(pass, outcome).Inc()
}

func (r *Registry) RecordSkip(pass, reason string) {
	r.ComponentsTotal.WithLabelValues(pass, Skipped).Inc()
	r.SkipsTotal.WithLabelValues(pass, reason).Inc()
}

func (r *Registry) RecordMembers(pass, collection string, n int) {
	r.MembersTotal.WithLabelValues(pass, collection).Add(float64(n))
}

// RecordPass notes a finished pass; status is "ok" or "error"
func (r *Registry) RecordPass(pass, status string, elapsed time.Duration) {
	r.PassesTotal.WithLabelValues(pass, status).Inc()
	r.PassDuration.WithLabelValues(pass).Observe(elapsed.Seconds())
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric in the text exposition format, replacing the file atomically
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
