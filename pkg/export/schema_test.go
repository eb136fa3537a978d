package export

import (
	"context"
	"testing"
	"time"

	"meridian-hq/callisto/pkg/study"
	"meridian-hq/callisto/pkg/study/storage"
)

func TestDataKeys_UnionSorted(t *testing.T) {
	store := storage.NewMemoryStorage()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	payloads := []map[string]any{
		{"zeta": 1, "alpha": 2},
		{"alpha": 3, "mid": 4},
		nil,
		{"beta": 5},
	}
	for i, data := range payloads {
		err := store.Put(context.Background(), "rounds", &study.Record{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Data:      data,
		})
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	keys, err := DataKeys(context.Background(), store, "rounds", 2)
	if err != nil {
		t.Fatalf("DataKeys() error = %v", err)
	}

	want := []string{"alpha", "beta", "mid", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
		}
	}
}

func TestDataKeys_EmptyCollection(t *testing.T) {
	store := storage.NewMemoryStorage()

	keys, err := DataKeys(context.Background(), store, "rounds", 100)
	if err != nil {
		t.Fatalf("DataKeys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want empty", keys)
	}
}
