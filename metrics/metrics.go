// Package metrics exposes validation outcomes as Prometheus collectors. A
// Metrics instance is plugged into Validate through the Opt.Recorder hook.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	frameskema "github.com/reoring/frameskema"
)

// Metrics contains the Prometheus collectors for validation runs.
type Metrics struct {
	validations *prometheus.CounterVec
	violations  *prometheus.CounterVec
	rowsChecked *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance and registers its collectors. A nil
// registerer falls back to the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frameskema_validations_total",
				Help: "Total number of batch validations performed",
			},
			[]string{"dataset", "result"},
		),

		violations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frameskema_violations_total",
				Help: "Total number of violations reported, by code",
			},
			[]string{"dataset", "code"},
		),

		rowsChecked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frameskema_rows_checked_total",
				Help: "Total number of rows checked",
			},
			[]string{"dataset"},
		),

		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "frameskema_validation_duration_seconds",
				Help:    "Duration of batch validations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~82ms
			},
			[]string{"dataset"},
		),
	}
}

// Dataset returns a Recorder reporting under the given dataset label.
func (m *Metrics) Dataset(name string) frameskema.Recorder {
	return datasetRecorder{m: m, dataset: name}
}

type datasetRecorder struct {
	m       *Metrics
	dataset string
}

// RecordValidation records the outcome of one Validate call.
func (r datasetRecorder) RecordValidation(rep *frameskema.Report, elapsed time.Duration) {
	result := "valid"
	if !rep.OK() {
		result = "invalid"
	}
	r.m.validations.WithLabelValues(r.dataset, result).Inc()
	r.m.rowsChecked.WithLabelValues(r.dataset).Add(float64(rep.Rows))
	r.m.duration.WithLabelValues(r.dataset).Observe(elapsed.Seconds())
	for _, v := range rep.Violations {
		r.m.violations.WithLabelValues(r.dataset, v.Code).Inc()
	}
}
