package export

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"meridian-hq/callisto/pkg/study"
)

const (
	// BOM is the UTF-8 byte-order marker emitted at the start of every
	// delimited-text member.
	BOM = "\uFEFF"

	// delimiter separates fields within a row.
	delimiter = ","

	// lineTerminator ends every row. It is the two-character literal
	// backslash-n, not a raw newline: the platform's analysis tooling has
	// always consumed this framing, and raw newlines inside values are
	// escaped to the same token.
	lineTerminator = `\n`

	// quote is the quoting character; it is doubled to escape itself.
	quote = `"`
)

// dataKeyPrefix disambiguates payload-derived output fields from core
// fields in headers and merged JSON records.
const dataKeyPrefix = "data."

// timestampLayout renders time values as UTC at second precision,
// independent of the server's local timezone.
const timestampLayout = "2006-01-02T15:04:05Z"

// Encoder converts records into serialized output units for one archive
// member. WriteHeader must be called once before the first record; it is a
// no-op for formats without a header unit.
type Encoder interface {
	WriteHeader() error
	WriteRecord(record *study.Record) error
}

// NewEncoder returns the encoder for the given format. An unrecognized
// format is a configuration error, not a per-record error.
func NewEncoder(format Format, w io.Writer, projection Projection) (Encoder, error) {
	switch format {
	case FormatCSV:
		return &csvEncoder{w: w, projection: projection}, nil
	case FormatJSON:
		return &jsonlEncoder{w: w, projection: projection}, nil
	default:
		return nil, &UnknownFormatError{Format: format}
	}
}

// castValue converts one field value to its delimited-text representation:
//
//   - arrays are cast recursively and joined with the field delimiter,
//     deliberately collapsing array structure into the row's own delimiter
//   - time values render as UTC at second precision
//   - other structured values serialize as compact JSON
//   - strings have raw newlines escaped to the literal two-character \n
//   - false and 0 render literally; only nil renders as empty text
func castValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(x, "\n", lineTerminator)
	case time.Time:
		return x.UTC().Format(timestampLayout)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = castValue(item)
		}
		return strings.Join(parts, delimiter)
	case []string:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = castValue(item)
		}
		return strings.Join(parts, delimiter)
	case map[string]any:
		return castJSON(x)
	default:
		// Uncommon shapes (typed slices, nested structs) fall back on
		// reflection so fixtures and decoded JSON behave identically.
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = castValue(rv.Index(i).Interface())
			}
			return strings.Join(parts, delimiter)
		case reflect.Map, reflect.Struct:
			return castJSON(v)
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return ""
			}
			return castValue(rv.Elem().Interface())
		default:
			return fmt.Sprintf("%v", v)
		}
	}
}

// castJSON serializes a structured value as compact JSON. A value that
// cannot be marshaled degrades to its fmt representation; export never
// fails on a single odd value.
func castJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// encodeCells casts and escapes each value, joins them with the delimiter
// and appends the line terminator. Escaping: quotes are doubled; if the
// resulting text contains the delimiter or the line terminator, the whole
// field is wrapped in quotes.
func encodeCells(values []any) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cell := castValue(v)
		if strings.Contains(cell, quote) {
			cell = strings.ReplaceAll(cell, quote, quote+quote)
		}
		if strings.Contains(cell, delimiter) || strings.Contains(cell, lineTerminator) {
			cell = quote + cell + quote
		}
		cells[i] = cell
	}
	return strings.Join(cells, delimiter) + lineTerminator
}
