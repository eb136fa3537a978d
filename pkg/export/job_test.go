package export

import (
	"testing"
	"time"
)

func TestNewJob_ArchiveName(t *testing.T) {
	started := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	job := NewJob("Meridian", FormatCSV, started)

	want := "Meridian Data - 2026-09-01 10-30-00"
	if job.ArchiveName != want {
		t.Errorf("ArchiveName = %q, want %q", job.ArchiveName, want)
	}
	if job.Format != FormatCSV {
		t.Errorf("Format = %s, want csv", job.Format)
	}
	if job.ID == "" {
		t.Error("job has no ID")
	}
}

func TestJob_CancelAndFinish(t *testing.T) {
	job := NewJob("Meridian", FormatJSON, time.Now())

	if job.Cancelled() {
		t.Error("new job is cancelled")
	}
	if job.Finished() {
		t.Error("new job is finished")
	}

	job.Cancel()
	if !job.Cancelled() {
		t.Error("Cancel() did not set the flag")
	}

	job.Finish()
	if !job.Finished() {
		t.Error("Finish() did not set the flag")
	}
}

func TestFormat_Extension(t *testing.T) {
	if got := FormatCSV.Extension(); got != "csv" {
		t.Errorf("csv extension = %s", got)
	}
	if got := FormatJSON.Extension(); got != "json" {
		t.Errorf("json extension = %s", got)
	}
}
