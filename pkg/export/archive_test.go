package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestArchive_MembersUnderDirectory(t *testing.T) {
	var buf bytes.Buffer
	archive := NewArchive(&buf, "Meridian Data - 2026-09-01 10-30-00")

	first, err := archive.Create("games.csv")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := io.WriteString(first, "games content"); err != nil {
		t.Fatalf("write error = %v", err)
	}

	second, err := archive.Create("players.csv")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := io.WriteString(second, "players content"); err != nil {
		t.Fatalf("write error = %v", err)
	}

	if err := archive.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	wantNames := []string{
		"Meridian Data - 2026-09-01 10-30-00/games.csv",
		"Meridian Data - 2026-09-01 10-30-00/players.csv",
	}
	if len(zr.File) != len(wantNames) {
		t.Fatalf("archive has %d members, want %d", len(zr.File), len(wantNames))
	}
	for i, want := range wantNames {
		if zr.File[i].Name != want {
			t.Errorf("member %d = %s, want %s", i, zr.File[i].Name, want)
		}
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(content) != "games content" {
		t.Errorf("member content = %q", content)
	}
}

func TestArchive_DuplicateEntry(t *testing.T) {
	var buf bytes.Buffer
	archive := NewArchive(&buf, "export")

	if _, err := archive.Create("games.csv"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := archive.Create("games.csv")
	if err == nil {
		t.Fatal("expected error for duplicate entry")
	}

	var dup *DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("error type = %T, want *DuplicateEntryError", err)
	}
	if dup.Name != "games.csv" {
		t.Errorf("duplicate name = %s, want games.csv", dup.Name)
	}
}

func TestArchive_UnclosedStreamIsInvalid(t *testing.T) {
	var buf bytes.Buffer
	archive := NewArchive(&buf, "export")

	w, err := archive.Create("games.csv")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := io.WriteString(w, "partial"); err != nil {
		t.Fatalf("write error = %v", err)
	}

	// No Close: an aborted job leaves the stream without a central
	// directory, which readers must reject.
	if _, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err == nil {
		t.Error("truncated archive was readable")
	}
}
