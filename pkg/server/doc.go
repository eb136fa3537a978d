// Package server provides the Meridian Callisto HTTP server.
//
// It assembles the export endpoint, health probes, and the metrics
// endpoint behind a shared middleware chain (request ID, logging, panic
// recovery) and owns the server lifecycle: signal handling and graceful
// shutdown. The export endpoint is mounted under a configurable path
// prefix and streams for as long as the collection scan takes, so the
// server runs without a write timeout.
package server
