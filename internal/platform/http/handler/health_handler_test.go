package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	for _, path := range []string{"/healthz", "/health/"} {
		r.GET(path, h)
		r.HEAD(path, h)
		r.OPTIONS(path, h)
	}
	return r
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health/"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(Health).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			if w.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var response map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response["status"] != "ok" {
				t.Errorf("expected status 'ok', got %q", response["status"])
			}
			if w.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("expected Cache-Control 'no-store', got %q", w.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestHealth_HEAD(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	setupRouter(Health).ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	// HEAD should have no body
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body for HEAD request, got %d bytes", w.Body.Len())
	}
}

func TestHealth_OPTIONS(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	setupRouter(Health).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/healthz", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestNewHealth_Checks(t *testing.T) {
	t.Parallel()

	ok := Check{Name: "db", Ping: func(ctx context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(ctx context.Context) error { return errors.New("dial tcp: refused") }}

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantBody   string
	}{
		{"all healthy", []Check{ok}, http.StatusOK, "ok"},
		{"one failing", []Check{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(NewHealth(tt.checks...)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var response struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Status != tt.wantBody {
				t.Errorf("expected status %q, got %q", tt.wantBody, response.Status)
			}
			if tt.wantStatus != http.StatusOK && response.Checks["redis"] != "unavailable" {
				t.Errorf("expected redis to be reported, got %v", response.Checks)
			}
			if response.Checks["db"] != "" {
				t.Errorf("healthy check should not be reported, got %v", response.Checks)
			}
		})
	}
}
