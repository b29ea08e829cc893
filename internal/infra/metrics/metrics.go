// Package metrics exposes Prometheus collectors for the request gate and password checks.
package metrics

import (
	"net/http"
	"time"

	"usersvc/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gate decision labels.
const (
	DecisionAllow    = "allow"
	DecisionMissing  = "missing"
	DecisionRejected = "rejected"
)

// Password check outcome labels.
const (
	OutcomeMatched  = "matched"
	OutcomeMismatch = "mismatch"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the service collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	gateDecisions  *prometheus.CounterVec
	passwordChecks *prometheus.CounterVec
	verifyDuration prometheus.Histogram
}

// New builds the collectors from the metrics config section.
func New(cfg *config.Config) *Metrics {
	namespace := "usersvc"
	if cfg != nil && cfg.Metrics.Namespace != "" {
		namespace = cfg.Metrics.Namespace
	}

	return NewWithNamespace(namespace)
}

// NewWithNamespace builds the collectors under the given namespace.
func NewWithNamespace(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Total number of request gate decisions",
		},
		[]string{"decision"},
	)

	m.passwordChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "password",
			Name:      "checks_total",
			Help:      "Total number of password checks by outcome",
		},
		[]string{"outcome"},
	)

	m.verifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "password",
			Name:      "verify_duration_seconds",
			Help:      "Time spent comparing a password against its bcrypt hash",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	m.registry.MustRegister(
		m.gateDecisions,
		m.passwordChecks,
		m.verifyDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create label combinations so they show up at zero.
	for _, d := range []string{DecisionAllow, DecisionMissing, DecisionRejected} {
		m.gateDecisions.WithLabelValues(d)
	}
	for _, o := range []string{OutcomeMatched, OutcomeMismatch, OutcomeNotFound, OutcomeError} {
		m.passwordChecks.WithLabelValues(o)
	}

	return m
}

// RecordGateDecision counts one gate decision.
func (m *Metrics) RecordGateDecision(decision string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(decision).Inc()
}

// RecordPasswordCheck counts one password check outcome.
func (m *Metrics) RecordPasswordCheck(outcome string) {
	if m == nil {
		return
	}
	m.passwordChecks.WithLabelValues(outcome).Inc()
}

// ObserveVerify records the duration of a single hash comparison.
func (m *Metrics) ObserveVerify(d time.Duration) {
	if m == nil {
		return
	}
	m.verifyDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
