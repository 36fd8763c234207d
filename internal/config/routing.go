package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Routing is the file-based routing policy: which paths bypass the
// engine entirely, which countries have listing pages, the feature-tag
// vocabulary for combination segments, and how bots are recognized.
type Routing struct {
	// ExcludedPrefixes bypass the engine unconditionally.
	ExcludedPrefixes []string `yaml:"excluded_prefixes"`

	// Countries with listing pages, by URL slug.
	Countries []string `yaml:"countries"`

	// Feature tags recognized at the tail of combination segments.
	Features []string `yaml:"features"`

	// BotPattern matches crawler user agents (case-insensitive).
	BotPattern string `yaml:"bot_pattern"`

	botRe *regexp.Regexp
}

// DefaultRouting is the policy used when no routing file is configured.
func DefaultRouting() *Routing {
	r := &Routing{
		ExcludedPrefixes: []string{"/_next", "/api", "/static", "/assets", "/admin", "/healthz", "/readyz", "/metrics", "/410"},
		Countries:        []string{"gh", "ng"},
		Features:         []string{"Mobile Optimized", "Live Betting", "Cash Out", "Quick Payout"},
		BotPattern:       `bot|crawl|slurp|spider|bing|duckduckgo|baidu|yandex`,
	}
	r.botRe = regexp.MustCompile(`(?i)` + r.BotPattern)
	return r
}

// LoadRouting reads the routing policy from path, or returns the default
// policy when path is empty.
func LoadRouting(path string) (*Routing, error) {
	if path == "" {
		return DefaultRouting(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing config: %w", err)
	}

	r := DefaultRouting()
	if err := yaml.Unmarshal(raw, r); err != nil {
		return nil, fmt.Errorf("parse routing config: %w", err)
	}

	if r.BotPattern != "" {
		re, err := regexp.Compile(`(?i)` + r.BotPattern)
		if err != nil {
			return nil, fmt.Errorf("compile bot pattern: %w", err)
		}
		r.botRe = re
	}
	return r, nil
}

// Excluded reports whether the path bypasses the engine. Paths with a
// file extension (static assets) are always excluded.
func (r *Routing) Excluded(path string) bool {
	for _, prefix := range r.ExcludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.Contains(lastSegment(path), ".")
}

// IsCountry reports whether slug names a country listing page.
func (r *Routing) IsCountry(slug string) bool {
	for _, c := range r.Countries {
		if c == slug {
			return true
		}
	}
	return false
}

// IsBot reports whether the user agent looks like a crawler.
func (r *Routing) IsBot(userAgent string) bool {
	return r.botRe != nil && r.botRe.MatchString(userAgent)
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
