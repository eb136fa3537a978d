package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tokens")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestFileValidator_Validate(t *testing.T) {
	path := writeTokenFile(t, `
# admin tokens
tok-alpha alice
tok-beta bob

tok-bare
`)

	v, err := NewFileValidator(path, false)
	if err != nil {
		t.Fatalf("NewFileValidator() error = %v", err)
	}
	defer v.Close()

	info, err := v.Validate(context.Background(), "tok-alpha")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.UserID != "alice" {
		t.Errorf("UserID = %s, want alice", info.UserID)
	}

	// Token without a user id maps to the admin user.
	info, err = v.Validate(context.Background(), "tok-bare")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.UserID != "admin" {
		t.Errorf("UserID = %s, want admin", info.UserID)
	}

	if _, err := v.Validate(context.Background(), "tok-unknown"); err == nil {
		t.Error("expected error for unknown token")
	}
	if _, err := v.Validate(context.Background(), "# admin tokens"); err == nil {
		t.Error("comment line was loaded as a token")
	}
}

func TestFileValidator_Reload(t *testing.T) {
	path := writeTokenFile(t, "tok-old alice\n")

	v, err := NewFileValidator(path, false)
	if err != nil {
		t.Fatalf("NewFileValidator() error = %v", err)
	}
	defer v.Close()

	if err := os.WriteFile(path, []byte("tok-new bob\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := v.reload(); err != nil {
		t.Fatalf("reload() error = %v", err)
	}

	if _, err := v.Validate(context.Background(), "tok-old"); err == nil {
		t.Error("rotated-out token still validates")
	}
	if _, err := v.Validate(context.Background(), "tok-new"); err != nil {
		t.Errorf("rotated-in token rejected: %v", err)
	}
}

func TestFileValidator_MissingFile(t *testing.T) {
	if _, err := NewFileValidator(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("expected error for missing token file")
	}
}
