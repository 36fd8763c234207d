// Package model defines domain entities for the application.
package model

import "strings"

// RedirectType represents the HTTP status a redirect rule maps to.
type RedirectType string

const (
	RedirectPermanent RedirectType = "301"
	RedirectTemporary RedirectType = "302"
	RedirectGone      RedirectType = "410"
)

// IsValid checks if the redirect type is one of the supported codes.
func (t RedirectType) IsValid() bool {
	return t == RedirectPermanent || t == RedirectTemporary || t == RedirectGone
}

// StatusCode returns the HTTP status code for the redirect type.
// Unknown types default to 301, matching the legacy rule data.
func (t RedirectType) StatusCode() int {
	switch t {
	case RedirectTemporary:
		return 302
	case RedirectGone:
		return 410
	default:
		return 301
	}
}

// RedirectRule maps a source path to a target URL or a terminal 410.
type RedirectRule struct {
	ID           string       `json:"id"`
	SourcePath   string       `json:"sourcePath"`
	TargetURL    string       `json:"targetUrl"`
	RedirectType RedirectType `json:"redirectType"`
	MatchExact   bool         `json:"matchExact"`
	IsActive     bool         `json:"isActive"`
}

// Matches reports whether the rule's source path matches the request path.
// Exact rules compare against the raw path only; non-exact rules compare
// against the normalized path and its trailing-slash twin.
func (r *RedirectRule) Matches(rawPath string) bool {
	if r.MatchExact {
		return r.SourcePath == rawPath
	}
	normalized := NormalizePath(rawPath)
	return r.SourcePath == normalized || r.SourcePath == normalized+"/"
}

// MatchesTarget reports whether the request path equals the rule's target.
// Used to catch 410 rules expressed on both ends of a logical pair.
func (r *RedirectRule) MatchesTarget(rawPath string) bool {
	if r.TargetURL == "" {
		return false
	}
	normalized := NormalizePath(rawPath)
	return r.TargetURL == rawPath || r.TargetURL == normalized || r.TargetURL == normalized+"/"
}

// NormalizePath strips a trailing slash except for the root path.
func NormalizePath(path string) string {
	if path != "/" && strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path
}

// ResolutionKind discriminates resolver outcomes.
type ResolutionKind string

const (
	ResolutionRedirect ResolutionKind = "redirect"
	ResolutionGone     ResolutionKind = "gone"
)

// Resolution is the outcome of resolving a request path against the rule
// set. A nil *Resolution means no rule applies.
type Resolution struct {
	Kind         ResolutionKind `json:"kind"`
	URL          string         `json:"url,omitempty"`
	RedirectType RedirectType   `json:"redirectType,omitempty"`
}

// IsGone reports whether the resolution is a terminal 410 verdict.
func (r *Resolution) IsGone() bool {
	return r != nil && r.Kind == ResolutionGone
}
