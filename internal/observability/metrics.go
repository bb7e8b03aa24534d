package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"source-irfitter/internal/engine"
	"source-irfitter/internal/match"
)

const namespace = "irfitter"

// Metrics collects run statistics in its own registry. It implements
// engine.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	jobs        prometheus.Counter
	jobDuration prometheus.Histogram
	records     *prometheus.CounterVec
	ambiguous   prometheus.Counter
	failures    *prometheus.CounterVec
}

var _ engine.Recorder = (*Metrics)(nil)

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Type jobs completed.",
		}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Time spent matching one outermost type.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Correspondence records by confidence.",
		}, []string{"confidence"}),
		ambiguous: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ambiguous_records_total",
			Help:      "Records flagged ambiguous by conflict resolution.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_failures_total",
			Help:      "Trees rejected before matching.",
		}, []string{"side"}),
	}

	m.registry.MustRegister(m.jobs, m.jobDuration, m.records, m.ambiguous, m.failures)

	for _, c := range match.AllConfidences {
		m.records.WithLabelValues(c.String())
	}

	return m
}

// Registry exposes the registry, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// RecordJob observes one finished type job.
func (m *Metrics) RecordJob(_ string, elapsed time.Duration, _ []match.Record) {
	m.jobs.Inc()
	m.jobDuration.Observe(elapsed.Seconds())
}

// RecordFailure counts a rejected tree.
func (m *Metrics) RecordFailure(_ string, side engine.Side) {
	m.failures.WithLabelValues(string(side)).Inc()
}

// RecordResult counts the final records.
func (m *Metrics) RecordResult(records []match.Record) {
	for i := range records {
		m.records.WithLabelValues(records[i].Confidence.String()).Inc()

		if records[i].Ambiguous {
			m.ambiguous.Inc()
		}
	}
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}

	return nil
}
