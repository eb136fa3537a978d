package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChecker_ReadinessAllHealthy(t *testing.T) {
	c := NewChecker()
	c.Register("storage", func(ctx context.Context) error { return nil })
	c.Register("sessions", func(ctx context.Context) error { return nil })

	status := c.CheckReadiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("status = %s, want ready", status.Status)
	}
	if len(status.Checks) != 2 {
		t.Errorf("got %d checks, want 2", len(status.Checks))
	}
}

func TestChecker_ReadinessDegraded(t *testing.T) {
	c := NewChecker()
	c.Register("storage", func(ctx context.Context) error { return nil })
	c.Register("sessions", func(ctx context.Context) error { return errors.New("locked") })

	status := c.CheckReadiness(context.Background())

	if status.Status != "unhealthy" {
		t.Errorf("status = %s, want unhealthy", status.Status)
	}
	if status.Checks["sessions"].Message != "locked" {
		t.Errorf("sessions message = %q", status.Checks["sessions"].Message)
	}
	if status.Checks["storage"].Status != "ok" {
		t.Errorf("storage status = %s", status.Checks["storage"].Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	c := NewChecker()

	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %s, want ok", status.Status)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	c := NewChecker()
	c.Register("storage", func(ctx context.Context) error { return errors.New("gone") })

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	c := NewChecker()

	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
