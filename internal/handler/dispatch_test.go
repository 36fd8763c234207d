package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/booldo/booldo/internal/config"
	"github.com/booldo/booldo/internal/model"
)

type fakeResolver struct {
	resolutions map[string]*model.Resolution
}

func (f fakeResolver) Resolve(ctx context.Context, path string) *model.Resolution {
	return f.resolutions[path]
}

type fakeOffers struct {
	statuses map[string]model.OfferStatus
}

func (f fakeOffers) ClassifyOffer(ctx context.Context, country, slug string) model.OfferStatus {
	return f.statuses[country+"/"+slug]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(resolver Resolver, offers OfferClassifier) *Dispatcher {
	return NewDispatcher(resolver, offers, config.DefaultRouting(), "https://booldo.example", testLogger())
}

func TestDispatch_PassThrough(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(fakeResolver{}, fakeOffers{})

	tests := []struct {
		name string
		path string
	}{
		{name: "excluded prefix", path: "/_next/static/chunk.js"},
		{name: "api route", path: "/api/offers"},
		{name: "file extension", path: "/favicon.ico"},
		{name: "gone page itself", path: "/410"},
		{name: "no matching rule", path: "/gh"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			d.Dispatch(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
			}
			if rec.Header().Get(ResolveHeader) != "pass" {
				t.Errorf("%s = %q, want pass", ResolveHeader, rec.Header().Get(ResolveHeader))
			}
		})
	}
}

func TestDispatch_Redirect(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(fakeResolver{resolutions: map[string]*model.Resolution{
		"/gh": {
			Kind:         model.ResolutionRedirect,
			URL:          "/gh-new",
			RedirectType: model.RedirectPermanent,
		},
		"/promo": {
			Kind:         model.ResolutionRedirect,
			URL:          "https://partner.example/landing",
			RedirectType: model.RedirectTemporary,
		},
	}}, fakeOffers{})

	t.Run("relative target absolutized", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/gh", nil)
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusMovedPermanently {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
		}
		if got := rec.Header().Get("Location"); got != "https://booldo.example/gh-new" {
			t.Errorf("Location = %q, want absolutized target", got)
		}
	})

	t.Run("absolute target untouched", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/promo", nil)
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
		}
		if got := rec.Header().Get("Location"); got != "https://partner.example/landing" {
			t.Errorf("Location = %q, want original target", got)
		}
	})
}

func TestDispatch_RuleGone(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(fakeResolver{resolutions: map[string]*model.Resolution{
		"/old-campaign": {Kind: model.ResolutionGone},
	}}, fakeOffers{})

	req := httptest.NewRequest(http.MethodGet, "/old-campaign", nil)
	rec := httptest.NewRecorder()
	d.Dispatch(rec, req)

	if rec.Code != http.StatusGone {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGone)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "410 Gone") {
		t.Error("body should contain the gone heading")
	}
}

func TestDispatch_OfferGone(t *testing.T) {
	t.Parallel()

	expires := "2024-03-01"
	d := newTestDispatcher(fakeResolver{}, fakeOffers{statuses: map[string]model.OfferStatus{
		"gh/expired-bonus": {
			ShouldReturn410: true,
			IsExpired:       true,
			Offer: &model.GoneDoc{
				Title:     "Welcome Bonus",
				Bookmaker: "1xBet",
				Expires:   expires,
			},
		},
		"gh/hidden-bonus": {
			ShouldReturn410: true,
			IsHidden:        true,
		},
		"gh/live-bonus": {ShouldReturn410: false},
	}})

	t.Run("expired offer serves full page to bots", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/gh/free-bet/expired-bonus", nil)
		req.Header.Set("User-Agent", "Googlebot/2.1")
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusGone {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusGone)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "expired") {
			t.Error("bot body should name the expiry")
		}
		if !strings.Contains(body, "Welcome Bonus") {
			t.Error("bot body should carry the offer title")
		}
		if !strings.Contains(body, expires) {
			t.Error("bot body should carry the expiry date")
		}
	})

	t.Run("browser gets lightweight page with same status", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/gh/free-bet/expired-bonus", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh)")
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusGone {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusGone)
		}
		if strings.Contains(rec.Body.String(), "Welcome Bonus") {
			t.Error("browser body should not carry the offer snapshot")
		}
	})

	t.Run("hidden offer", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/gh/hidden-bonus/x", nil)
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		// Slug is the last segment; /gh/hidden-bonus/x looks up "x".
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want pass for unknown slug", rec.Code)
		}
	})

	t.Run("live offer passes through", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/gh/free-bet/live-bonus", nil)
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("non-country prefix skips offer check", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/blog/expired-bonus", nil)
		rec := httptest.NewRecorder()
		d.Dispatch(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})
}

func TestDispatch_OfferGoneWinsOverRedirect(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(
		fakeResolver{resolutions: map[string]*model.Resolution{
			"/gh/free-bet/dead-offer": {
				Kind:         model.ResolutionRedirect,
				URL:          "/gh",
				RedirectType: model.RedirectPermanent,
			},
		}},
		fakeOffers{statuses: map[string]model.OfferStatus{
			"gh/dead-offer": {ShouldReturn410: true, IsHidden: true},
		}},
	)

	req := httptest.NewRequest(http.MethodGet, "/gh/free-bet/dead-offer", nil)
	rec := httptest.NewRecorder()
	d.Dispatch(rec, req)

	if rec.Code != http.StatusGone {
		t.Errorf("status = %d, want gone before redirect", rec.Code)
	}
}
