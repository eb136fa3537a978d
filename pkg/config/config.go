package config

import "time"

// Config is the root configuration structure for Meridian Callisto. It
// contains all configuration sections for the HTTP server, study record
// storage, session authentication, the export pipeline, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Storage contains configuration for the study record store.
	Storage StorageConfig `yaml:"storage"`

	// Auth contains configuration for session token validation.
	Auth AuthConfig `yaml:"auth"`

	// Export contains configuration for the data export pipeline.
	Export ExportConfig `yaml:"export"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must stay zero (no timeout) for the export endpoint to
	// stream large archives; exports are bounded by client disconnect, not
	// by the server.
	// Default: 0 (no timeout)
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. In-flight exports past this deadline are dropped.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// StorageConfig contains configuration for the study record store.
type StorageConfig struct {
	// Backend selects the storage implementation.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings, used when Backend is
	// "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite backend settings.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/study.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// AuthConfig contains configuration for session token validation.
type AuthConfig struct {
	// Backend selects the session validator.
	// Options: "sqlite" (session store database), "file" (static token file)
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SessionsPath is the session database file path, used when Backend is
	// "sqlite".
	// Default: "data/sessions.db"
	SessionsPath string `yaml:"sessions_path"`

	// TokensFile is the static token file path, used when Backend is
	// "file". Each line holds "token user-id".
	TokensFile string `yaml:"tokens_file"`

	// Watch reloads the token file on change, used when Backend is "file".
	// Default: true
	Watch bool `yaml:"watch"`

	// Pruning contains expired-session cleanup settings.
	Pruning PruningConfig `yaml:"pruning"`
}

// PruningConfig contains expired-session cleanup settings.
type PruningConfig struct {
	// Enabled controls whether expired sessions are pruned on a schedule.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Schedule is a standard cron expression for pruning runs.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// ExportConfig contains configuration for the data export pipeline.
type ExportConfig struct {
	// Product is the product name embedded in archive filenames.
	// Default: "Meridian"
	Product string `yaml:"product"`

	// PageSize is the number of records fetched per batch during
	// collection scans. Memory usage scales with this value, not with
	// collection size.
	// Default: 1000
	PageSize int `yaml:"page_size"`

	// PathPrefix is the mount point of the export endpoint. Format is
	// selected by the path suffix under this prefix (".csv" or ".json").
	// Default: "/admin/export"
	PathPrefix string `yaml:"path_prefix"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
