// Package telemetry groups the observability subsystems: structured
// logging setup (telemetry/logging), Prometheus metrics
// (telemetry/metrics), and health/readiness probes (telemetry/health).
package telemetry
