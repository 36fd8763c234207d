package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker struct {
	err error
}

func (f fakeChecker) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status field = %q, want ok", resp.Status)
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    HealthChecker
		cache      HealthChecker
		wantStatus int
		wantField  string
	}{
		{
			name:       "all healthy",
			content:    fakeChecker{},
			cache:      fakeChecker{},
			wantStatus: http.StatusOK,
			wantField:  "ok",
		},
		{
			name:       "content down",
			content:    fakeChecker{err: errors.New("connection refused")},
			cache:      fakeChecker{},
			wantStatus: http.StatusServiceUnavailable,
			wantField:  "unhealthy",
		},
		{
			name:       "cache down",
			content:    fakeChecker{},
			cache:      fakeChecker{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantField:  "unhealthy",
		},
		{
			name:       "nothing to probe",
			content:    nil,
			cache:      nil,
			wantStatus: http.StatusOK,
			wantField:  "ok",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(tt.content, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()
			h.Readyz(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != tt.wantField {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantField)
			}
		})
	}
}
