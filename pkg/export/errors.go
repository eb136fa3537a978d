package export

import "fmt"

// ExportError represents a failure while exporting one entity kind.
type ExportError struct {
	Format      Format // Output format ("csv", "json")
	Entity      string // Entity kind being exported
	RecordCount int    // Records already emitted when the failure occurred
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, entity=%s, record_count=%d]: %v",
		e.Format, e.Entity, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format Format, entity string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		Entity:      entity,
		RecordCount: recordCount,
		Cause:       cause,
	}
}

// DuplicateEntryError reports an attempt to declare two archive members
// with the same name within one job. This is a configuration error and is
// always fatal to the job.
type DuplicateEntryError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("archive entry already exists: %s", e.Name)
}

// ArchiveError represents a failure in the archive layer or the underlying
// output sink. These are fatal: the archive stream is truncated and must be
// treated as invalid by the consumer.
type ArchiveError struct {
	Operation string // Operation that failed ("create", "write", "close")
	Entry     string // Archive entry involved, if any
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *ArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("archive error [operation=%s, entry=%s]: %v", e.Operation, e.Entry, e.Cause)
	}
	return fmt.Sprintf("archive error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ArchiveError) Unwrap() error {
	return e.Cause
}

// UnknownFormatError reports a format the encoder does not recognize.
// This is a configuration error, not a per-record error.
type UnknownFormatError struct {
	Format Format
}

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown export format: %s", e.Format)
}
