package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all engagement engine metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Activity metrics
	ActivityChecksTotal      *prometheus.CounterVec
	ActivityCompletionsTotal *prometheus.CounterVec
	DailyRolloversTotal      prometheus.Counter

	// Gamification metrics
	StreakDays         prometheus.Gauge
	PointsBalance      prometheus.Gauge
	PointsAwardedTotal prometheus.Counter

	// Storage metrics
	StorageErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance registered against reg.
// A nil reg registers against a fresh private registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "bloomcycle"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		ActivityChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "activity_checks_total",
				Help:      "Total number of can-start checks",
			},
			[]string{"activity", "allowed"},
		),
		ActivityCompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "activity_completions_total",
				Help:      "Total number of recorded activity completions",
			},
			[]string{"activity"},
		),
		DailyRolloversTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "daily_rollovers_total",
				Help:      "Number of times a stale daily counts record was replaced",
			},
		),
		StreakDays: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "streak_days",
				Help:      "Current consecutive activity day streak",
			},
		),
		PointsBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "points_balance",
				Help:      "Current accumulated reward points",
			},
		),
		PointsAwardedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engagement",
				Name:      "points_awarded_total",
				Help:      "Total reward points awarded",
			},
		),
		StorageErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "storage",
				Name:      "errors_total",
				Help:      "Total number of failed key-value store operations",
			},
			[]string{"op"}, // get, set
		),
	}
}

// --- Convenience methods ---

// RecordActivityCheck records a can-start decision.
func (m *Metrics) RecordActivityCheck(activity string, allowed bool) {
	if m == nil {
		return
	}
	m.ActivityChecksTotal.WithLabelValues(activity, strconv.FormatBool(allowed)).Inc()
}

// RecordCompletion records a completed activity.
func (m *Metrics) RecordCompletion(activity string) {
	if m == nil {
		return
	}
	m.ActivityCompletionsTotal.WithLabelValues(activity).Inc()
}

// RecordRollover records a lazy daily counts reset.
func (m *Metrics) RecordRollover() {
	if m == nil {
		return
	}
	m.DailyRolloversTotal.Inc()
}

// SetStreak sets the current streak gauge.
func (m *Metrics) SetStreak(days int) {
	if m == nil {
		return
	}
	m.StreakDays.Set(float64(days))
}

// RecordPointsAwarded records an award and the resulting balance.
func (m *Metrics) RecordPointsAwarded(amount, balance int64) {
	if m == nil {
		return
	}
	if amount > 0 {
		m.PointsAwardedTotal.Add(float64(amount))
	}
	m.PointsBalance.Set(float64(balance))
}

// RecordStorageError records a failed store operation.
func (m *Metrics) RecordStorageError(op string) {
	if m == nil {
		return
	}
	m.StorageErrorsTotal.WithLabelValues(op).Inc()
}
