package content

import (
	"context"
	"errors"

	"github.com/booldo/booldo/internal/model"
)

// ErrNotFound indicates the query matched no document.
var ErrNotFound = errors.New("document not found")

// Document is the raw minimal-field projection the engine reads for
// lifecycle decisions. Fields absent from a projection stay zero.
type Document struct {
	Title          string `json:"title"`
	Bookmaker      string `json:"bookmaker,omitempty"`
	Expires        string `json:"expires,omitempty"`
	NoIndex        bool   `json:"noindex"`
	SitemapInclude *bool  `json:"sitemapInclude,omitempty"`
	Slug           string `json:"slug,omitempty"`
}

// FooterLink is one entry of the active footer document's link array.
type FooterLink struct {
	Label          string `json:"label"`
	Slug           string `json:"slug"`
	NoIndex        bool   `json:"noindex"`
	SitemapInclude *bool  `json:"sitemapInclude,omitempty"`
}

// Source is the read-only content service the engine queries. The engine
// never mutates content through it.
type Source interface {
	// FetchRules returns the full active redirect-rule set.
	FetchRules(ctx context.Context) ([]model.RedirectRule, error)

	// FetchDoc runs a single-document query.
	// Returns ErrNotFound when no document matches.
	FetchDoc(ctx context.Context, q *Query) (*Document, error)

	// FetchFooterLinks returns the link array of the active footer document.
	FetchFooterLinks(ctx context.Context) ([]FooterLink, error)

	// FetchOptions returns the filter option universe for a country.
	FetchOptions(ctx context.Context, country string) (*model.OptionUniverse, error)
}
