package export

import (
	"archive/zip"
	"io"
	"log/slog"
	"time"
)

// Archive assembles named logical files into a single zip stream written
// incrementally to the underlying sink. Members are compressed as their
// bytes are pushed; whole files are never buffered.
//
// Every member lives under a single top-level directory named after the
// archive itself, so extracting the download yields one folder. Member
// names must be unique within the job; the registry is owned by the
// Archive value, not shared process state, so concurrent jobs cannot
// interfere with each other.
//
// Archive is not safe for concurrent use: one export job drives one
// archive sequentially, and the zip format itself admits only one open
// member at a time.
type Archive struct {
	zw     *zip.Writer
	dir    string
	names  map[string]struct{}
	logger *slog.Logger
}

// NewArchive creates an archive streaming into w, with dir as the single
// top-level directory for all members.
func NewArchive(w io.Writer, dir string) *Archive {
	return &Archive{
		zw:     zip.NewWriter(w),
		dir:    dir,
		names:  make(map[string]struct{}),
		logger: slog.Default().With("component", "export.archive"),
	}
}

// Create declares a new logical file and returns the sink for its bytes.
// The sink is valid until the next Create or Close call. Declaring a name
// twice within one job is a configuration error and fatal to the job.
func (a *Archive) Create(name string) (io.Writer, error) {
	if _, exists := a.names[name]; exists {
		return nil, &DuplicateEntryError{Name: name}
	}
	a.names[name] = struct{}{}

	header := &zip.FileHeader{
		Name:     a.dir + "/" + name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}

	w, err := a.zw.CreateHeader(header)
	if err != nil {
		return nil, &ArchiveError{Operation: "create", Entry: name, Cause: err}
	}

	a.logger.Debug("archive entry opened", "entry", name)
	return w, nil
}

// Close finalizes the archive structure. It must be called only after
// every declared logical file has been fully written; a job that aborts or
// is cancelled never calls Close, leaving the stream truncated and invalid
// by design.
func (a *Archive) Close() error {
	if err := a.zw.Close(); err != nil {
		return &ArchiveError{Operation: "close", Cause: err}
	}
	return nil
}
