package export

import (
	"context"
	"io"

	"meridian-hq/callisto/pkg/study"
)

// Pipeline streams every entity kind into one archive, in the fixed kind
// order. It is driven by the HTTP endpoint and by the offline export
// command; the caller owns the output sink and the job lifecycle.
type Pipeline struct {
	// Storage is the record source.
	Storage study.Storage

	// PageSize is the batch window for collection scans. Zero selects
	// DefaultPageSize.
	PageSize int

	// OnKind, when non-nil, is invoked after each entity kind with the
	// number of records emitted for it, including kinds that failed
	// partway through.
	OnKind func(entity string, records int)
}

// Run writes the complete archive for job into w and returns the number of
// bytes written. On error or cancellation the archive is left unfinalized:
// the bytes already written form a truncated zip stream that readers must
// treat as invalid. Cancellation surfaces as context.Canceled, either from
// ctx or from the job's cancellation flag checked between kinds.
func (p *Pipeline) Run(ctx context.Context, job *Job, w io.Writer) (int64, error) {
	sink := &countingWriter{w: w}
	archive := NewArchive(sink, job.ArchiveName)

	for _, kind := range Kinds {
		if job.Cancelled() {
			return sink.n, context.Canceled
		}

		count, err := p.exportKind(ctx, job, archive, kind)
		if p.OnKind != nil {
			p.OnKind(kind.Name, count)
		}
		if err != nil {
			if err == context.Canceled || ctx.Err() != nil {
				return sink.n, context.Canceled
			}
			return sink.n, NewExportError(job.Format, kind.Name, count, err)
		}
	}

	if err := archive.Close(); err != nil {
		return sink.n, err
	}

	return sink.n, nil
}

// exportKind emits one archive member for one entity kind and returns the
// number of records written. Kinds carrying an open data payload get a
// schema discovery pass first; the discovered keys are frozen for the
// member.
func (p *Pipeline) exportKind(ctx context.Context, job *Job, archive *Archive, kind EntityKind) (int, error) {
	projection := Projection{Fields: kind.Fields}
	if kind.HasData {
		keys, err := DataKeys(ctx, p.Storage, kind.Name, p.PageSize)
		if err != nil {
			return 0, err
		}
		projection.DataKeys = keys
	}

	member, err := archive.Create(kind.Name + "." + job.Format.Extension())
	if err != nil {
		return 0, err
	}

	enc, err := NewEncoder(job.Format, member, projection)
	if err != nil {
		return 0, err
	}
	if err := enc.WriteHeader(); err != nil {
		return 0, err
	}

	count := 0
	it := &Iterator{
		Storage:    p.Storage,
		Collection: kind.Name,
		PageSize:   p.PageSize,
	}
	err = it.Each(ctx, func(record *study.Record) error {
		if err := enc.WriteRecord(record); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// countingWriter tracks compressed bytes pushed to the sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
