// Package filter implements the bidirectional mapping between filter
// selections and the URL forms that encode them.
package filter

import (
	"regexp"
	"strings"

	"github.com/booldo/booldo/internal/model"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name to its URL slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func Slugify(name string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// Unslugify resolves a slug back to the display name of the option whose
// slugified name equals it. Unknown slugs are returned unchanged rather
// than dropped, so callers degrade gracefully.
func Unslugify(slug string, options []model.FilterOption) string {
	for _, opt := range options {
		if Slugify(opt.Name) == slug {
			return opt.Name
		}
	}
	return slug
}

// containsSlug reports whether any option in the list slugifies to slug.
func containsSlug(slug string, options []model.FilterOption) bool {
	for _, opt := range options {
		if Slugify(opt.Name) == slug {
			return true
		}
	}
	return false
}

// titleCase converts a slug-ish token to spaced title case, matching the
// query-parameter decoding behavior ("mobile-money" -> "Mobile Money").
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
