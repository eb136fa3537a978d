package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks the export pipeline.
//
// Metrics:
//   - export_jobs_total: jobs by format and terminal status
//     (completed, failed, cancelled)
//   - export_records_total: records emitted, by entity kind
//   - export_bytes_total: compressed archive bytes written to clients
//   - export_duration_seconds: job duration histogram by format
type ExportMetrics struct {
	jobsTotal    *prometheus.CounterVec
	recordsTotal *prometheus.CounterVec
	bytesTotal   prometheus.Counter
	duration     *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics with the provided
// registry.
func NewExportMetrics(cfg *Config, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_jobs_total",
				Help:      "Total number of export jobs by terminal status",
			},
			[]string{"format", "status"},
		),

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_records_total",
				Help:      "Total number of records emitted, by entity kind",
			},
			[]string{"entity"},
		),

		bytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_bytes_total",
				Help:      "Total compressed archive bytes written to clients",
			},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_duration_seconds",
				Help:      "Duration of export jobs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"format"},
		),
	}

	registry.MustRegister(
		em.jobsTotal,
		em.recordsTotal,
		em.bytesTotal,
		em.duration,
	)

	return em
}

// ObserveJob records one finished export job.
func (em *ExportMetrics) ObserveJob(format, status string, duration time.Duration, bytes int64) {
	em.jobsTotal.WithLabelValues(format, status).Inc()
	em.duration.WithLabelValues(format).Observe(duration.Seconds())
	em.bytesTotal.Add(float64(bytes))
}

// ObserveRecords records emitted records for one entity kind.
func (em *ExportMetrics) ObserveRecords(entity string, count int) {
	em.recordsTotal.WithLabelValues(entity).Add(float64(count))
}
