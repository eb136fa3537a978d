package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ListenAddress = ""
	cfg.Export.PageSize = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(verr.Errors), verr.Errors)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"sqlite without path", func(c *Config) { c.Storage.SQLite.Path = "" }, "storage.sqlite.path"},
		{"unknown auth backend", func(c *Config) { c.Auth.Backend = "ldap" }, "auth.backend"},
		{"file auth without tokens file", func(c *Config) {
			c.Auth.Backend = "file"
			c.Auth.TokensFile = ""
		}, "auth.tokens_file"},
		{"bad cron expression", func(c *Config) {
			c.Auth.Pruning.Enabled = true
			c.Auth.Pruning.Schedule = "every day"
		}, "auth.pruning.schedule"},
		{"empty product", func(c *Config) { c.Export.Product = "" }, "export.product"},
		{"relative path prefix", func(c *Config) { c.Export.PathPrefix = "admin/export" }, "export.path_prefix"},
		{"unknown log level", func(c *Config) { c.Telemetry.Logging.Level = "loud" }, "telemetry.logging.level"},
		{"unknown log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"relative metrics path", func(c *Config) { c.Telemetry.Metrics.Path = "metrics" }, "telemetry.metrics.path"},
		{"negative read timeout", func(c *Config) { c.Server.ReadTimeout = -1 }, "server.read_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not name field %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidate_MemoryBackendNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "memory"
	cfg.Storage.SQLite.Path = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_PruningDisabledSkipsSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Pruning.Enabled = false
	cfg.Auth.Pruning.Schedule = "garbage"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
