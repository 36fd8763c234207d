package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePurger struct {
	err    error
	called bool
}

func (f *fakePurger) Invalidate(ctx context.Context) error {
	f.called = true
	return f.err
}

func TestPurge(t *testing.T) {
	t.Parallel()

	t.Run("both purged", func(t *testing.T) {
		t.Parallel()

		rules := &fakePurger{}
		gone := &fakePurger{}
		h := NewAdminHandler(rules, gone, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
		rec := httptest.NewRecorder()
		h.Purge(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !rules.called || !gone.called {
			t.Error("both cache layers should be purged")
		}

		var resp PurgeResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Purged) != 2 {
			t.Errorf("purged = %v, want both layers", resp.Purged)
		}
	})

	t.Run("one layer failing purges the other", func(t *testing.T) {
		t.Parallel()

		rules := &fakePurger{err: errors.New("redis down")}
		gone := &fakePurger{}
		h := NewAdminHandler(rules, gone, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
		rec := httptest.NewRecorder()
		h.Purge(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
		if !gone.called {
			t.Error("gone cache should still be purged")
		}

		var resp PurgeResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Purged) != 1 || resp.Purged[0] != "gone" {
			t.Errorf("purged = %v, want only gone", resp.Purged)
		}
		if len(resp.Errors) != 1 {
			t.Errorf("errors = %v, want one", resp.Errors)
		}
	})
}
