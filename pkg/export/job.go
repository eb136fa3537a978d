package export

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Format identifies an export output format. The string value doubles as
// the archive member file extension.
type Format string

const (
	// FormatCSV is the delimited-text format.
	FormatCSV Format = "csv"
	// FormatJSON is the line-delimited JSON format.
	FormatJSON Format = "json"
)

// Extension returns the file extension for archive members in this format.
func (f Format) Extension() string {
	return string(f)
}

// archiveTimestampLayout is the second-precision local timestamp embedded
// in archive filenames, e.g. "Meridian Data - 2026-09-01 14-03-59".
const archiveTimestampLayout = "2006-01-02 15-04-05"

// Job carries the per-request state of one export: the chosen format, the
// timestamped archive name, and the cooperative cancellation flag set by
// the connection-close observer. Jobs are transient; nothing about them is
// persisted and a failed job is simply re-requested by the client.
type Job struct {
	// ID uniquely identifies the job, for log correlation only.
	ID string

	// Format is the output format for every archive member.
	Format Format

	// ArchiveName is the archive filename without extension. It is also
	// the name of the single top-level directory inside the archive.
	ArchiveName string

	// StartedAt is when the request arrived.
	StartedAt time.Time

	cancelled atomic.Bool
	finished  atomic.Bool
}

// NewJob creates a job for one export request. The archive name embeds the
// product name and the request arrival time at second precision.
func NewJob(product string, format Format, now time.Time) *Job {
	return &Job{
		ID:          uuid.NewString(),
		Format:      format,
		ArchiveName: fmt.Sprintf("%s Data - %s", product, now.Format(archiveTimestampLayout)),
		StartedAt:   now,
	}
}

// Cancel sets the cancellation flag. It is observed cooperatively between
// page fetches, never mid-encode.
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// Cancelled reports whether the job has been cancelled.
func (j *Job) Cancelled() bool {
	return j.cancelled.Load()
}

// Finish marks the job as terminal. A finished job ignores subsequent
// connection-close events.
func (j *Job) Finish() {
	j.finished.Store(true)
}

// Finished reports whether the job reached a terminal state.
func (j *Job) Finished() bool {
	return j.finished.Load()
}
