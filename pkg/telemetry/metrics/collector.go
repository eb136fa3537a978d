package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the metrics collector.
type Config struct {
	// Enabled turns metric collection on.
	Enabled bool

	// Namespace is the metric name prefix. Default: "meridian"
	Namespace string

	// Subsystem is the second metric name segment. Default: "callisto"
	Subsystem string

	// Path is the HTTP path the metrics endpoint is served on.
	// Default: "/metrics"
	Path string

	// DurationBuckets are the histogram buckets for export durations in
	// seconds. Defaults span sub-second CLI exports to multi-minute
	// full-study downloads.
	DurationBuckets []float64
}

// Collector owns the Prometheus registry and all metric families for the
// service. It manages registration and provides the recording interfaces
// used by the export pipeline.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	exportMetrics *ExportMetrics
}

// NewCollector creates a metrics collector with the specified
// configuration and registry. If registry is nil a fresh registry is
// created.
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &Config{}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "meridian"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "callisto"
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.exportMetrics = NewExportMetrics(cfg, registry)

	return c
}

// Export returns the export-pipeline metrics.
func (c *Collector) Export() *ExportMetrics {
	return c.exportMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
