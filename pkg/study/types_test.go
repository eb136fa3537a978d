package study

import (
	"testing"
	"time"
)

func TestRecord_Field(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	record := &Record{
		ID:        "r1",
		CreatedAt: created,
		Fields:    map[string]any{"name": "alpha", "empty": nil},
	}

	if got := record.Field("id"); got != "r1" {
		t.Errorf("Field(id) = %v", got)
	}
	if got := record.Field("createdAt"); got != created {
		t.Errorf("Field(createdAt) = %v", got)
	}
	if got := record.Field("name"); got != "alpha" {
		t.Errorf("Field(name) = %v", got)
	}
	if got := record.Field("missing"); got != nil {
		t.Errorf("Field(missing) = %v, want nil", got)
	}
}

func TestRecord_Field_ZeroCreatedAt(t *testing.T) {
	record := &Record{ID: "r1"}

	if got := record.Field("createdAt"); got != nil {
		t.Errorf("Field(createdAt) on zero time = %v, want nil", got)
	}
}
