package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LookupMetrics records admit-card lookup outcomes
type LookupMetrics struct {
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewLookupMetrics registers the lookup collectors with reg
func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	factory := promauto.With(reg)
	return &LookupMetrics{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admitcard_lookups_total",
				Help: "Total number of admit card lookups by outcome",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admitcard_lookup_duration_seconds",
				Help:    "Duration of admit card lookups in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}
}

// ObserveLookup counts one concluded lookup
func (m *LookupMetrics) ObserveLookup(outcome string, elapsed time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
