// Package gone classifies whether a requested resource is permanently
// removed and should answer 410 instead of rendering.
package gone

import (
	"github.com/booldo/booldo/internal/content"
)

// ContentType enumerates the document kinds the classifier understands.
type ContentType string

const (
	TypeOffers  ContentType = "offers"
	TypeArticle ContentType = "article"
	TypeFooter  ContentType = "footer"
	TypePage    ContentType = "page"
)

// strategy pairs a content type with the minimal-field query it needs.
// Footer is special-cased in the classifier because its links live inside
// a single document rather than as documents of their own.
type strategy struct {
	query func(slug string) *content.Query
}

// strategies maps each known content type to its query. Unknown types
// fall back to genericQuery.
var strategies = map[ContentType]strategy{
	TypeOffers: {query: func(slug string) *content.Query {
		return content.NewQuery("offers").
			WhereParam("slug.current", "slug", slug).
			First().
			Select("title", "\"bookmaker\": bookmaker->name", "expires", "noindex", "sitemapInclude")
	}},
	TypeArticle: {query: func(slug string) *content.Query {
		return content.NewQuery("article").
			WhereParam("slug.current", "slug", slug).
			First().
			Select("title", "noindex", "sitemapInclude")
	}},
	TypePage: {query: func(slug string) *content.Query {
		return content.NewQuery("page").
			WhereParam("slug.current", "slug", slug).
			First().
			Select("title", "noindex", "sitemapInclude")
	}},
}

// genericQuery is the fallback for content types without a registered
// strategy: title plus visibility flags only.
func genericQuery(contentType ContentType, slug string) *content.Query {
	return content.NewQuery(string(contentType)).
		WhereParam("slug.current", "slug", slug).
		First().
		Select("title", "noindex", "sitemapInclude")
}

// queryFor returns the minimal-field query for a content type.
func queryFor(contentType ContentType, slug string) *content.Query {
	if s, ok := strategies[contentType]; ok {
		return s.query(slug)
	}
	return genericQuery(contentType, slug)
}
