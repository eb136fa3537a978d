// Package config provides configuration loading, validation, and access
// for Meridian Callisto.
//
// Configuration is loaded from a YAML file, defaults are applied to any
// zero-valued fields, environment variables of the form MERIDIAN_SECTION_FIELD
// override file values, and the result is validated before use. A process-wide
// singleton holds the active configuration; tests inject explicit Config
// values instead.
//
// Sections:
//   - server: HTTP listen address and timeouts
//   - storage: study record backend (sqlite or memory)
//   - auth: session validation backend and pruning schedule
//   - export: product name, scan page size, endpoint mount prefix
//   - telemetry: logging and metrics
package config
