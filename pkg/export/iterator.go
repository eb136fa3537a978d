package export

import (
	"context"

	"meridian-hq/callisto/pkg/study"
)

// DefaultPageSize is the number of records fetched per page when no page
// size is configured.
const DefaultPageSize = 1000

// Iterator pages through one collection in fixed-size windows and yields
// records one at a time until the collection is exhausted. It never holds
// more than one page in memory.
//
// The sequence is forward-only and non-restartable. It reproduces the same
// result set as a single unbounded read only while the collection's stable
// (createdAt, id) order is undisturbed; the iterator does not defend
// against concurrent writes to the collection during the scan.
type Iterator struct {
	// Storage is the collection source.
	Storage study.Storage

	// Collection names the collection to scan.
	Collection string

	// PageSize is the fetch window. Zero or negative selects
	// DefaultPageSize.
	PageSize int

	// DataOnly restricts each fetch to the record's data payload.
	DataOnly bool
}

// Each invokes fn for every record in the collection, in stable scan
// order. It returns the first error from fn or from the underlying fetch,
// and checks ctx between page fetches so a cancelled export stops issuing
// reads at the next page boundary.
func (it *Iterator) Each(ctx context.Context, fn func(*study.Record) error) error {
	pageSize := it.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := it.Storage.List(ctx, it.Collection, &study.Query{
			Limit:    pageSize,
			Offset:   offset,
			DataOnly: it.DataOnly,
		})
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		for _, record := range page {
			if err := fn(record); err != nil {
				return err
			}
		}

		offset += len(page)
	}
}
