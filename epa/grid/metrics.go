package grid

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/twoparton/epagrid/epa"
)

const (
	outcomeOK       = "ok"
	outcomeConfig   = "configuration_error"
	outcomeIO       = "io_error"
	outcomeInvalid  = "validation_error"
	metricNamespace = "epagrid"
)

var (
	gridBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "grid_builds_total",
		Help:      "Flux grid builds, by outcome.",
	}, []string{"outcome"})

	gridBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "grid_build_duration_seconds",
		Help:      "Time spent sampling a flux model and writing its grid.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	})

	gridLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "grid_loads_total",
		Help:      "Flux grid loads, by outcome.",
	}, []string{"outcome"})

	gridLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "grid_load_duration_seconds",
		Help:      "Time spent reading, validating and initialising a flux grid.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	gridSamples = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "grid_samples",
		Help:      "Number of samples held by loaded flux grids.",
		Buckets:   prometheus.ExponentialBuckets(2, 4, 10),
	})
)

// outcome labels err by its error class.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, epa.ErrConfiguration):
		return outcomeConfig
	case errors.Is(err, epa.ErrIO):
		return outcomeIO
	default:
		return outcomeInvalid
	}
}
