package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/authgate/pkg/validator"
)

// DurationBuckets covers in-process checks (microseconds) up to slow store lookups.
var DurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Observer exports validation outcomes as Prometheus metrics.
// It implements validator.Observer.
type Observer struct {
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	decisions   *prometheus.CounterVec
}

// NewObserver creates the collectors and registers them with reg.
// Panics if registration fails, e.g. when called twice with the same namespace.
func NewObserver(reg prometheus.Registerer, namespace string) *Observer {
	o := &Observer{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Validator runs by outcome",
			},
			[]string{"validator", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Validator run duration",
				Buckets:   DurationBuckets,
			},
			[]string{"validator"},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authentication_decisions_total",
				Help:      "Middleware decisions by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(o.validations, o.duration, o.decisions)
	return o
}

// Observe implements validator.Observer.
func (o *Observer) Observe(name string, outcome validator.Outcome, elapsed time.Duration) {
	o.validations.WithLabelValues(name, string(outcome)).Inc()
	o.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Decision counts one authentication decision, e.g. "authenticated" or "rejected".
func (o *Observer) Decision(result string) {
	o.decisions.WithLabelValues(result).Inc()
}
