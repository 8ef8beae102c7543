package observability

import (
	"context"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of bigroot_computations_total.
const (
	OutcomePerfect     = "perfect"
	OutcomeApproximate = "approximate"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Computations *prometheus.CounterVec
	Duration     prometheus.Histogram
	Iterations   prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bigroot_computations_total",
				Help: "Completed square root computations",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigroot_compute_duration_seconds",
			Help:    "Time spent in the engine per computation",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bigroot_fraction_iterations_total",
			Help: "Fractional digit iterations performed",
		}),
	}
	for _, c := range []prometheus.Collector{m.Computations, m.Duration, m.Iterations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every completed computation.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnComplete: func(_ context.Context, e *domain.ComputeEvent) {
			outcome := OutcomeApproximate
			if e.Perfect {
				outcome = OutcomePerfect
			}
			m.Computations.WithLabelValues(outcome).Inc()
			m.Duration.Observe(e.Elapsed.Seconds())
			m.Iterations.Add(float64(e.Iterations))
		},
	}
}
