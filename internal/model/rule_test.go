package model

import (
	"testing"
	"time"
)

func TestRedirectRuleMatches(t *testing.T) {
	tests := []struct {
		name string
		rule RedirectRule
		path string
		want bool
	}{
		{
			name: "exact path",
			rule: RedirectRule{SourcePath: "/gh-old"},
			path: "/gh-old",
			want: true,
		},
		{
			name: "trailing slash on request",
			rule: RedirectRule{SourcePath: "/gh-old"},
			path: "/gh-old/",
			want: true,
		},
		{
			name: "trailing slash on rule",
			rule: RedirectRule{SourcePath: "/gh-old/"},
			path: "/gh-old",
			want: true,
		},
		{
			name: "exact rule rejects trailing slash",
			rule: RedirectRule{SourcePath: "/gh-old", MatchExact: true},
			path: "/gh-old/",
			want: false,
		},
		{
			name: "different path",
			rule: RedirectRule{SourcePath: "/gh-old"},
			path: "/gh-new",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/gh/", want: "/gh"},
		{in: "/gh", want: "/gh"},
		{in: "/", want: "/"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedirectTypeStatusCode(t *testing.T) {
	tests := []struct {
		t    RedirectType
		want int
	}{
		{t: RedirectPermanent, want: 301},
		{t: RedirectTemporary, want: 302},
		{t: RedirectGone, want: 410},
		{t: RedirectType(""), want: 301},
		{t: RedirectType("307"), want: 301},
	}

	for _, tt := range tests {
		if got := tt.t.StatusCode(); got != tt.want {
			t.Errorf("StatusCode(%q) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestGoneDocHidden(t *testing.T) {
	f, tr := false, true

	tests := []struct {
		name string
		doc  *GoneDoc
		want bool
	}{
		{name: "nil doc", doc: nil, want: false},
		{name: "visible", doc: &GoneDoc{}, want: false},
		{name: "noindex", doc: &GoneDoc{NoIndex: true}, want: true},
		{name: "sitemap excluded", doc: &GoneDoc{SitemapInclude: &f}, want: true},
		{name: "sitemap included", doc: &GoneDoc{SitemapInclude: &tr}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Hidden(); got != tt.want {
				t.Errorf("Hidden() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoneDocExpired(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires string
		want    bool
	}{
		{name: "past date", expires: "2026-03-14", want: true},
		{name: "today expires at midnight", expires: "2026-03-15", want: true},
		{name: "future date", expires: "2026-03-16", want: false},
		{name: "timestamp earlier today", expires: "2026-03-15T09:00:00Z", want: true},
		{name: "timestamp later today", expires: "2026-03-15T22:00:00Z", want: false},
		{name: "empty", expires: "", want: false},
		{name: "malformed", expires: "next week", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &GoneDoc{Expires: tt.expires}
			if got := doc.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
