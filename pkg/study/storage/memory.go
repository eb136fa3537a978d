package storage

import (
	"context"
	"sort"
	"sync"

	"meridian-hq/callisto/pkg/study"
)

// MemoryStorage implements the study.Storage interface using in-memory maps.
// This implementation is intended for testing only and should not be used in
// production. Listing order matches the SQLite backend: (createdAt, id)
// ascending.
type MemoryStorage struct {
	collections map[string]map[string]*study.Record
	mu          sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		collections: make(map[string]map[string]*study.Record),
	}
}

// Put inserts or replaces a record in the named collection.
func (s *MemoryStorage) Put(ctx context.Context, collection string, record *study.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]*study.Record)
		s.collections[collection] = coll
	}

	// Copy to avoid callers mutating stored state
	recordCopy := *record
	coll[record.ID] = &recordCopy

	return nil
}

// List returns records from the named collection in stable (createdAt, id)
// order, honoring limit, offset and the data-only projection.
func (s *MemoryStorage) List(ctx context.Context, collection string, query *study.Query) ([]*study.Record, error) {
	if query == nil {
		query = &study.Query{}
	}

	s.mu.RLock()
	coll := s.collections[collection]
	all := make([]*study.Record, 0, len(coll))
	for _, record := range coll {
		all = append(all, record)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	start := query.Offset
	if start > len(all) {
		return []*study.Record{}, nil
	}

	end := len(all)
	if query.Limit > 0 && start+query.Limit < end {
		end = start + query.Limit
	}

	results := make([]*study.Record, 0, end-start)
	for _, record := range all[start:end] {
		recordCopy := *record
		if query.DataOnly {
			recordCopy.Fields = nil
		}
		results = append(results, &recordCopy)
	}

	return results, nil
}

// Count returns the number of records in the named collection.
func (s *MemoryStorage) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing for the in-memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}
