package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"meridian-hq/callisto/pkg/cli"
	"meridian-hq/callisto/pkg/export"
	"meridian-hq/callisto/pkg/telemetry/logging"
)

var exportFlags struct {
	format   string
	output   string
	pageSize int
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an export archive to a local file",
	Long: `Write a complete export archive to a local file without going through
the HTTP endpoint. The archive is identical to what the endpoint serves:
one member per entity kind, in the selected format, under a single
timestamped top-level directory.

Examples:
  # Export as delimited text to an auto-named archive
  meridian export --format csv

  # Export as line-delimited JSON to a named file
  meridian export --format json --output study.zip`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "csv", "output format (csv, json)")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default: archive name + .zip)")
	exportCmd.Flags().IntVar(&exportFlags.pageSize, "page-size", 0, "override scan page size")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := export.Format(exportFlags.format)
	if format != export.FormatCSV && format != export.FormatJSON {
		return cli.NewConfigError("format",
			fmt.Sprintf("unsupported format %q (options: csv, json)", exportFlags.format))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Keep stdout readable for the progress bar; structured logs go out
	// at warn and above only.
	if _, err := logging.Setup(logging.Config{
		Level:  "warn",
		Format: cfg.Telemetry.Logging.Format,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	pageSize := cfg.Export.PageSize
	if exportFlags.pageSize > 0 {
		pageSize = exportFlags.pageSize
	}

	job := export.NewJob(cfg.Export.Product, format, time.Now())

	path := exportFlags.output
	if path == "" {
		path = job.ArchiveName + ".zip"
	}

	f, err := os.Create(path)
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	fmt.Printf("Exporting to %s (%s)\n", path, format)

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(int64(len(export.Kinds)))

	var done int64
	var records int
	pipeline := &export.Pipeline{
		Storage:  store,
		PageSize: pageSize,
		OnKind: func(entity string, count int) {
			done++
			records += count
			progress.Update(done)
		},
	}

	ctx := cli.SetupSignalHandler()
	bytes, err := pipeline.Run(ctx, job, f)
	if err != nil {
		progress.Error(err)
		f.Close()
		// A partial archive is unreadable; do not leave it behind.
		os.Remove(path)
		return cli.NewCommandError("export", err)
	}
	progress.Finish()

	if err := f.Close(); err != nil {
		return cli.NewCommandError("export", err)
	}

	fmt.Printf("✓ Exported %d records (%d bytes) to %s\n", records, bytes, path)
	return nil
}
