// Package metrics exposes Prometheus instrumentation for crawls and rating runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Game outcomes recorded by the crawler.
const (
	OutcomeTimeline = "timeline"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
)

// Manager owns the collectors. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	gamesProcessed  *prometheus.CounterVec
	fetchAttempts   *prometheus.CounterVec
	fetchRetries    prometheus.Counter
	ratingRuns      prometheus.Counter
	reconstructTime prometheus.Histogram
	ratingTime      prometheus.Histogram
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates and registers every collector.
func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "ceres"}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	f := promauto.With(m.registry)
	m.gamesProcessed = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_processed_total",
		Help:      "Games handled by the crawler, by outcome.",
	}, []string{"outcome"})
	m.fetchAttempts = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "fetch_attempts_total",
		Help:      "Page fetch attempts, by result.",
	}, []string{"result"})
	m.fetchRetries = f.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "fetch_retries_total",
		Help:      "Page fetches retried after a failure.",
	})
	m.ratingRuns = f.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rating_runs_total",
		Help:      "Completed rating runs.",
	})
	m.reconstructTime = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "reconstruct_duration_seconds",
		Help:      "Time spent reconstructing one game timeline.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	m.ratingTime = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "rating_duration_seconds",
		Help:      "Time spent in one rating run.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	return m
}

// Registry returns the registry backing the collectors.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// GameProcessed counts a crawled game.
func (m *Manager) GameProcessed(outcome string) {
	if m == nil {
		return
	}
	m.gamesProcessed.WithLabelValues(outcome).Inc()
}

// FetchAttempt counts one HTTP or browser fetch.
func (m *Manager) FetchAttempt(ok bool) {
	if m == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	m.fetchAttempts.WithLabelValues(result).Inc()
}

// FetchRetried counts a retry.
func (m *Manager) FetchRetried() {
	if m == nil {
		return
	}
	m.fetchRetries.Inc()
}

// ObserveReconstruct records one reconstruction.
func (m *Manager) ObserveReconstruct(d time.Duration) {
	if m == nil {
		return
	}
	m.reconstructTime.Observe(d.Seconds())
}

// ObserveRatingRun records one rating run.
func (m *Manager) ObserveRatingRun(d time.Duration) {
	if m == nil {
		return
	}
	m.ratingRuns.Inc()
	m.ratingTime.Observe(d.Seconds())
}
