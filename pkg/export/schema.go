package export

import (
	"context"
	"sort"

	"meridian-hq/callisto/pkg/study"
)

// Projection is the frozen output shape of one entity kind for one job:
// the declared core fields followed by the payload keys discovered before
// iteration began. Payload keys that first appear after the projection is
// computed are never retroactively added.
type Projection struct {
	Fields   []string
	DataKeys []string
}

// DataKeys scans the entire collection once and returns the union of all
// distinct payload keys observed, sorted for determinism. Only the data
// payload is retrieved, bounding the scan's I/O to the payload column. An
// empty collection yields an empty key set, which is valid.
func DataKeys(ctx context.Context, storage study.Storage, collection string, pageSize int) ([]string, error) {
	seen := make(map[string]struct{})

	it := &Iterator{
		Storage:    storage,
		Collection: collection,
		PageSize:   pageSize,
		DataOnly:   true,
	}

	err := it.Each(ctx, func(record *study.Record) error {
		for key := range record.Data {
			seen[key] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}
