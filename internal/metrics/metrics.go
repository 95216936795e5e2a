// Package metrics exposes judgement and session metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Hit error buckets in milliseconds, symmetric around zero.
var defaultErrorBuckets = []float64{-150, -100, -50, -25, -10, 0, 10, 25, 50, 100, 150}

type Manager struct {
	namespace    string
	errorBuckets []float64
	registry     *prometheus.Registry

	judgements    *prometheus.CounterVec
	hitError      prometheus.Histogram
	score         prometheus.Gauge
	combo         prometheus.Gauge
	maxCombo      prometheus.Gauge
	sessions      *prometheus.CounterVec
	invalidStates prometheus.Counter
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    "beatline",
		errorBuckets: defaultErrorBuckets,
		registry:     prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.judgements = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "judgements_total",
		Help:      "Final judgements by grade",
	}, []string{"grade", "kind"})

	m.hitError = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "hit_error_milliseconds",
		Help:      "Signed press error against the note time, positive is late",
		Buckets:   m.errorBuckets,
	})

	m.score = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "score",
		Help:      "Score of the current session",
	})

	m.combo = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "combo",
		Help:      "Current combo",
	})

	m.maxCombo = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "max_combo",
		Help:      "Highest combo of the current session",
	})

	m.sessions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_total",
		Help:      "Sessions by how they ended",
	}, []string{"outcome"})

	m.invalidStates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "invalid_state_errors_total",
		Help:      "Host integration errors reported by sessions",
	})
}

// ObserveJudgement records a resolved note and the session totals after it.
func (m *Manager) ObserveJudgement(n *game.Note, score, combo, maxCombo int) {
	m.judgements.WithLabelValues(n.Grade.String(), n.Kind.String()).Inc()
	m.score.Set(float64(score))
	m.combo.Set(float64(combo))
	m.maxCombo.Set(float64(maxCombo))
}

// ObserveHitError records the signed error of an accepted press.
func (m *Manager) ObserveHitError(d time.Duration) {
	m.hitError.Observe(float64(d) / float64(time.Millisecond))
}

// SessionEnded counts a finished session: "completed", "aborted" or "failed".
func (m *Manager) SessionEnded(outcome string) {
	m.sessions.WithLabelValues(outcome).Inc()
}

func (m *Manager) InvalidState() {
	m.invalidStates.Inc()
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
