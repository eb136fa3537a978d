package study

import (
	"context"
	"time"
)

// Record is one datum from a study collection. Core fields live in Fields,
// keyed by their declared names; the open experiment payload lives in Data.
// ID and CreatedAt are pulled out of Fields because every collection has
// them and the storage layer orders by them.
type Record struct {
	// ID uniquely identifies the record within its collection.
	ID string `json:"id"`

	// CreatedAt is when the record was created. Together with ID it
	// defines the stable scan order of a collection.
	CreatedAt time.Time `json:"createdAt"`

	// Fields holds the remaining core fields by declared name. Values are
	// strings, numbers, booleans, timestamps, arrays or nested objects;
	// absent fields are simply missing from the map.
	Fields map[string]any `json:"fields"`

	// Data is the open experiment payload. Nil for collections that do
	// not carry one.
	Data map[string]any `json:"data,omitempty"`
}

// Field returns the named core field, resolving the id and createdAt
// pseudo-fields from their dedicated struct members. A missing field
// returns nil.
func (r *Record) Field(name string) any {
	switch name {
	case "id":
		return r.ID
	case "createdAt":
		if r.CreatedAt.IsZero() {
			return nil
		}
		return r.CreatedAt
	default:
		return r.Fields[name]
	}
}

// Query defines pagination and projection parameters for listing records
// from a collection. Listing order is always (createdAt, id) ascending;
// callers that page with Offset rely on that order being stable for the
// duration of their scan.
type Query struct {
	// Limit is the maximum number of records to return. Zero means no
	// limit.
	Limit int `json:"limit,omitempty"`

	// Offset skips the first N records in scan order.
	Offset int `json:"offset,omitempty"`

	// DataOnly restricts retrieval to the record id and data payload,
	// leaving Fields empty. Used by payload schema discovery to bound I/O
	// on full-collection scans.
	DataOnly bool `json:"data_only,omitempty"`
}

// Storage is the collection source: a named, queryable, paginatable store
// of study records. Implementations must be safe for concurrent use.
//
// The export pipeline treats a Storage as effectively read-only while a
// scan is in flight; the interface does not defend against concurrent
// writes reordering an ongoing paginated read.
type Storage interface {
	// Put inserts or replaces a record in the named collection.
	Put(ctx context.Context, collection string, record *Record) error

	// List returns records from the named collection in stable
	// (createdAt, id) order, honoring the query's limit, offset and
	// projection. An empty result is a valid response, not an error.
	List(ctx context.Context, collection string, query *Query) ([]*Record, error)

	// Count returns the number of records in the named collection.
	Count(ctx context.Context, collection string) (int64, error)

	// Ping verifies the backend is reachable. Used by readiness checks.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
