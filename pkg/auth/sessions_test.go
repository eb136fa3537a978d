package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()

	store, err := NewSessionStore(&SessionStoreConfig{
		Path: filepath.Join(t.TempDir(), "sessions.db"),
	})
	if err != nil {
		t.Fatalf("NewSessionStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSessionStore_CreateAndValidate(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token == "" {
		t.Fatal("Create() returned empty token")
	}

	info, err := store.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", info.UserID)
	}
	if !info.ExpiresAt.After(time.Now()) {
		t.Error("session already expired")
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store := newTestSessionStore(t)

	if _, err := store.Validate(context.Background(), "not-a-token"); err == nil {
		t.Error("expected error for unknown token")
	}
}

func TestSessionStore_ExpiredToken(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", -time.Minute)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := store.Validate(ctx, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Validate(ctx, token); err == nil {
		t.Error("deleted token still validates")
	}
}

func TestSessionStore_PruneExpired(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "expired-1", -time.Hour); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "expired-2", -time.Minute); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	live, err := store.Create(ctx, "live", time.Hour)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := store.PruneExpired(ctx)
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	if _, err := store.Validate(ctx, live); err != nil {
		t.Errorf("live session pruned: %v", err)
	}
}
