// Package metrics provides Prometheus metrics for the export service.
//
// The Collector owns the registry and the metric families; the export
// pipeline records into ExportMetrics and the /metrics endpoint is served
// by Handler.
//
// Exposed metrics:
//
//	meridian_callisto_export_jobs_total{format,status}
//	meridian_callisto_export_records_total{entity}
//	meridian_callisto_export_bytes_total
//	meridian_callisto_export_duration_seconds{format}
package metrics
