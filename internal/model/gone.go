package model

import "time"

// GoneDoc is the minimal snapshot of a document needed to render a gone
// page: title, bookmaker name and expiry date, plus the visibility flags
// the verdict was derived from.
type GoneDoc struct {
	Title          string `json:"title"`
	Bookmaker      string `json:"bookmaker,omitempty"`
	Expires        string `json:"expires,omitempty"` // YYYY-MM-DD or empty
	NoIndex        bool   `json:"noindex"`
	SitemapInclude *bool  `json:"sitemapInclude,omitempty"`
}

// Hidden reports whether the document is excluded from indexing.
func (d *GoneDoc) Hidden() bool {
	if d == nil {
		return false
	}
	return d.NoIndex || (d.SitemapInclude != nil && !*d.SitemapInclude)
}

// Expired reports whether the expiry is strictly in the past.
func (d *GoneDoc) Expired(now time.Time) bool {
	if d == nil {
		return false
	}
	return ExpiresBefore(d.Expires, now)
}

// ExpiresBefore reports whether a raw expiry value lies strictly before
// now. Accepts RFC3339 timestamps and bare YYYY-MM-DD dates; a bare date
// expires at midnight UTC. Empty or malformed values never expire.
func ExpiresBefore(raw string, now time.Time) bool {
	if raw == "" {
		return false
	}
	expires, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		expires, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return false
	}
	return expires.Before(now)
}

// GoneStatus is the classifier verdict for a (content type, slug) pair.
type GoneStatus struct {
	ShouldReturn410 bool     `json:"shouldReturn410"`
	Doc             *GoneDoc `json:"doc"`
}

// OfferStatus is the offer-specific verdict. It distinguishes the reason
// so the gone page can pick the right variant.
type OfferStatus struct {
	ShouldReturn410 bool     `json:"shouldReturn410"`
	Offer           *GoneDoc `json:"offer"`
	IsExpired       bool     `json:"isExpired"`
	IsHidden        bool     `json:"isHidden"`
	Country         string   `json:"country,omitempty"`
}
