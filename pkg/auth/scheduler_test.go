package auth

import (
	"context"
	"testing"
)

func TestScheduler_StartStop(t *testing.T) {
	store := newTestSessionStore(t)

	s := NewScheduler(store, "0 3 * * *")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler not running after Start()")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler still running after Stop()")
	}
}

func TestScheduler_EmptySchedule(t *testing.T) {
	store := newTestSessionStore(t)

	s := NewScheduler(store, "")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler running with no schedule configured")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	store := newTestSessionStore(t)

	s := NewScheduler(store, "not a cron expression")
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
