package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meridian-hq/callisto/pkg/study"
)

func putRecords(t *testing.T, store study.Storage, collection string, n int) {
	t.Helper()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := store.Put(context.Background(), collection, &study.Record{
			ID:        fmt.Sprintf("rec-%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Fields:    map[string]any{"index": i},
			Data:      map[string]any{"payload": i},
		})
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
}

func TestMemoryStorage_ScanOrder(t *testing.T) {
	store := NewMemoryStorage()
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	// Same timestamp: order falls back to id.
	for _, id := range []string{"b", "a", "c"} {
		err := store.Put(context.Background(), "games", &study.Record{ID: id, CreatedAt: ts})
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
	// Earlier timestamp sorts first regardless of id.
	err := store.Put(context.Background(), "games", &study.Record{
		ID: "z", CreatedAt: ts.Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	records, err := store.List(context.Background(), "games", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"z", "a", "b", "c"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, id := range want {
		if records[i].ID != id {
			t.Errorf("records[%d].ID = %s, want %s", i, records[i].ID, id)
		}
	}
}

func TestMemoryStorage_LimitOffset(t *testing.T) {
	store := NewMemoryStorage()
	putRecords(t, store, "games", 10)

	records, err := store.List(context.Background(), "games", &study.Query{Limit: 3, Offset: 4})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != "rec-004" {
		t.Errorf("first record = %s, want rec-004", records[0].ID)
	}

	// Offset past the end is an empty result, not an error.
	records, err = store.List(context.Background(), "games", &study.Query{Offset: 100})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records past the end, want 0", len(records))
	}
}

func TestMemoryStorage_DataOnly(t *testing.T) {
	store := NewMemoryStorage()
	putRecords(t, store, "games", 2)

	records, err := store.List(context.Background(), "games", &study.Query{DataOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	for _, record := range records {
		if record.Fields != nil {
			t.Errorf("record %s: fields present in data-only projection", record.ID)
		}
		if record.Data == nil {
			t.Errorf("record %s: data missing in data-only projection", record.ID)
		}
	}
}

func TestMemoryStorage_PutReplaces(t *testing.T) {
	store := NewMemoryStorage()
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, name := range []string{"first", "second"} {
		err := store.Put(context.Background(), "games", &study.Record{
			ID:        "g1",
			CreatedAt: ts,
			Fields:    map[string]any{"name": name},
		})
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	count, err := store.Count(context.Background(), "games")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	records, err := store.List(context.Background(), "games", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := records[0].Fields["name"]; got != "second" {
		t.Errorf("name = %v, want second", got)
	}
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	store := NewMemoryStorage()
	putRecords(t, store, "games", 1)

	records, err := store.List(context.Background(), "games", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	records[0].ID = "mutated"

	records, err = store.List(context.Background(), "games", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if records[0].ID != "rec-000" {
		t.Error("caller mutation leaked into stored record")
	}
}
