package export

import (
	"encoding/json"
	"io"

	"meridian-hq/callisto/pkg/study"
)

// jsonlEncoder writes the line-delimited JSON format: one compact JSON
// object per physical line, with the projected payload keys merged into
// the core-field record under "data."-prefixed keys. There is no header
// unit.
type jsonlEncoder struct {
	w          io.Writer
	projection Projection
}

// WriteHeader is a no-op; the line-delimited format has no header unit.
func (e *jsonlEncoder) WriteHeader() error {
	return nil
}

// WriteRecord emits one merged JSON object followed by a newline. Core
// fields absent from the record are omitted rather than serialized as
// null, matching the sparse shape of the source records.
func (e *jsonlEncoder) WriteRecord(record *study.Record) error {
	merged := make(map[string]any, len(e.projection.Fields)+len(e.projection.DataKeys))

	for _, field := range e.projection.Fields {
		if v := record.Field(field); v != nil {
			merged[field] = v
		}
	}
	for _, key := range e.projection.DataKeys {
		if v, ok := record.Data[key]; ok {
			merged[dataKeyPrefix+key] = v
		}
	}

	line, err := json.Marshal(merged)
	if err != nil {
		return err
	}

	if _, err := e.w.Write(line); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}
