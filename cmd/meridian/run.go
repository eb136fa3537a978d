package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"meridian-hq/callisto/pkg/auth"
	"meridian-hq/callisto/pkg/cli"
	"meridian-hq/callisto/pkg/config"
	"meridian-hq/callisto/pkg/server"
	"meridian-hq/callisto/pkg/study"
	"meridian-hq/callisto/pkg/study/storage"
	"meridian-hq/callisto/pkg/telemetry/logging"
	"meridian-hq/callisto/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Meridian data access server",
	Long: `Start the Meridian data access server with the specified configuration.

The server listens on the configured address and serves the export
endpoint, health probes, and the metrics endpoint.

Examples:
  # Start with default config
  meridian run

  # Start with custom config
  meridian run --config /etc/meridian/config.yaml

  # Override listen address
  meridian run --listen 0.0.0.0:8080

  # Validate config without starting server
  meridian run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	if _, err := logging.Setup(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Meridian Callisto v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	fmt.Printf("✓ Storage initialized (%s)\n", cfg.Storage.Backend)

	ctx := cli.SetupSignalHandler()

	authorizer, closeAuth, err := buildAuthorizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAuth()
	fmt.Printf("✓ Auth initialized (%s)\n", cfg.Auth.Backend)

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&metrics.Config{
			Enabled: true,
			Path:    cfg.Telemetry.Metrics.Path,
		}, nil)
	}

	srv := server.NewServer(cfg, store, authorizer, collector)

	fmt.Printf("✓ Export endpoint: http://%s%s/.csv | .json\n",
		cfg.Server.ListenAddress, cfg.Export.PathPrefix)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// loadConfig initializes the configuration singleton from the global
// config flag.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}

// openStorage opens the configured study record backend.
func openStorage(cfg *config.Config) (study.Storage, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.Storage.SQLite.Path,
			MaxOpenConns: cfg.Storage.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Storage.SQLite.MaxIdleConns,
			WALMode:      cfg.Storage.SQLite.WALMode,
			BusyTimeout:  cfg.Storage.SQLite.BusyTimeout,
		})
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, cli.NewConfigError("storage.backend",
			fmt.Sprintf("unsupported backend: %s", cfg.Storage.Backend))
	}
}

// buildAuthorizer assembles the session validator for the configured auth
// backend and, for the sqlite backend, starts the prune scheduler. The
// returned close function releases the validator and stops the scheduler.
func buildAuthorizer(ctx context.Context, cfg *config.Config) (auth.Authorizer, func(), error) {
	switch cfg.Auth.Backend {
	case "sqlite":
		sessions, err := auth.NewSessionStore(&auth.SessionStoreConfig{
			Path: cfg.Auth.SessionsPath,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session store: %w", err)
		}

		var scheduler *auth.Scheduler
		if cfg.Auth.Pruning.Enabled {
			scheduler = auth.NewScheduler(sessions, cfg.Auth.Pruning.Schedule)
			if err := scheduler.Start(ctx); err != nil {
				sessions.Close()
				return nil, nil, fmt.Errorf("failed to start session pruning: %w", err)
			}
		}

		closeFn := func() {
			if scheduler != nil {
				scheduler.Stop()
			}
			sessions.Close()
		}
		return auth.NewTokenAuthorizer(sessions), closeFn, nil

	case "file":
		validator, err := auth.NewFileValidator(cfg.Auth.TokensFile, cfg.Auth.Watch)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load token file: %w", err)
		}
		return auth.NewTokenAuthorizer(validator), func() { validator.Close() }, nil

	default:
		return nil, nil, cli.NewConfigError("auth.backend",
			fmt.Sprintf("unsupported backend: %s", cfg.Auth.Backend))
	}
}
