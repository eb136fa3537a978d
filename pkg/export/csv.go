package export

import (
	"io"

	"meridian-hq/callisto/pkg/study"
)

// csvEncoder writes the delimited-text format. Every member starts with a
// UTF-8 BOM followed by a header row naming the projected core fields and
// then the discovered payload keys prefixed with "data.".
//
// The framing is the platform's historical one and is not interchangeable
// with RFC 4180: rows end with the two-character literal \n rather than a
// raw newline, so the whole member is a single physical line.
type csvEncoder struct {
	w          io.Writer
	projection Projection
}

// WriteHeader emits the BOM and the header row.
func (e *csvEncoder) WriteHeader() error {
	if _, err := io.WriteString(e.w, BOM); err != nil {
		return err
	}

	names := make([]any, 0, len(e.projection.Fields)+len(e.projection.DataKeys))
	for _, field := range e.projection.Fields {
		names = append(names, field)
	}
	for _, key := range e.projection.DataKeys {
		names = append(names, dataKeyPrefix+key)
	}

	_, err := io.WriteString(e.w, encodeCells(names))
	return err
}

// WriteRecord emits one row: the projected core fields in declared order,
// then the projected payload keys. Values absent from the record render as
// empty cells.
func (e *csvEncoder) WriteRecord(record *study.Record) error {
	values := make([]any, 0, len(e.projection.Fields)+len(e.projection.DataKeys))
	for _, field := range e.projection.Fields {
		values = append(values, record.Field(field))
	}
	for _, key := range e.projection.DataKeys {
		values = append(values, record.Data[key])
	}

	_, err := io.WriteString(e.w, encodeCells(values))
	return err
}
