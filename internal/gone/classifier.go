package gone

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/booldo/booldo/internal/cache"
	"github.com/booldo/booldo/internal/content"
	"github.com/booldo/booldo/internal/metrics"
	"github.com/booldo/booldo/internal/model"
)

// Classifier decides whether a (content type, slug) pair is permanently
// gone. Verdicts are memoized for cache.GoneTTL; any fetch error resolves
// to "not gone" so content keeps rendering when the CMS is unreachable.
type Classifier struct {
	source  content.Source
	store   cache.Store
	clock   cache.Clock
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewClassifier creates a Classifier.
func NewClassifier(source content.Source, store cache.Store, clock cache.Clock, logger *slog.Logger, recorder metrics.Recorder) *Classifier {
	if clock == nil {
		clock = cache.SystemClock{}
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Classifier{
		source:  source,
		store:   store,
		clock:   clock,
		logger:  logger,
		metrics: recorder,
	}
}

// Classify returns the gone verdict for a content type and slug.
//
// A missing document is gone. An existing document is gone iff noindex is
// true or sitemapInclude is false. Footer sub-links are searched inside
// the single active footer document's link array; no match is gone.
func (c *Classifier) Classify(ctx context.Context, contentType ContentType, slug string) model.GoneStatus {
	key := cache.GoneKeyPrefix + string(contentType) + ":" + slug
	var status model.GoneStatus
	if c.fromCache(ctx, key, &status) {
		return status
	}

	var cacheable bool
	if contentType == TypeFooter {
		status, cacheable = c.classifyFooter(ctx, slug)
	} else {
		status, cacheable = c.classifyDoc(ctx, contentType, slug)
	}

	c.metrics.IncGoneVerdict(string(contentType), status.ShouldReturn410)
	// Fail-open verdicts from fetch errors are not memoized so the next
	// request retries the source.
	if cacheable {
		c.toCache(ctx, key, status)
	}
	return status
}

// ClassifyOffer returns the offer verdict for a country and slug. Beyond
// the visibility flags, an offer with an expiry strictly in the past is
// gone regardless of whether it is otherwise indexable.
func (c *Classifier) ClassifyOffer(ctx context.Context, country, slug string) model.OfferStatus {
	key := cache.GoneKeyPrefix + "offer:" + country + ":" + slug
	var status model.OfferStatus
	if c.fromCache(ctx, key, &status) {
		return status
	}

	doc, err := c.source.FetchDoc(ctx, queryFor(TypeOffers, slug))
	switch {
	case errors.Is(err, content.ErrNotFound):
		status = model.OfferStatus{ShouldReturn410: true, Country: country}
	case err != nil:
		// Fail open: let the offer render rather than block on a CMS error.
		c.logger.Error("offer status fetch failed", "slug", slug, "error", err)
		return model.OfferStatus{ShouldReturn410: false}
	default:
		snapshot := toGoneDoc(doc)
		// The verdict reads the raw expiry value: the snapshot's date is
		// truncated for display and would push expiry to the next UTC day.
		isExpired := model.ExpiresBefore(doc.Expires, c.clock.Now())
		isHidden := snapshot.Hidden()
		status = model.OfferStatus{
			ShouldReturn410: isExpired || isHidden,
			Offer:           snapshot,
			IsExpired:       isExpired,
			IsHidden:        isHidden,
			Country:         country,
		}
	}

	c.metrics.IncGoneVerdict("offer", status.ShouldReturn410)
	c.toCache(ctx, key, status)
	return status
}

// Invalidate drops all cached verdicts.
func (c *Classifier) Invalidate(ctx context.Context) error {
	return c.store.Purge(ctx, cache.GoneKeyPrefix)
}

func (c *Classifier) classifyDoc(ctx context.Context, contentType ContentType, slug string) (model.GoneStatus, bool) {
	doc, err := c.source.FetchDoc(ctx, queryFor(contentType, slug))
	if errors.Is(err, content.ErrNotFound) {
		return model.GoneStatus{ShouldReturn410: true}, true
	}
	if err != nil {
		c.logger.Error("gone status fetch failed", "type", contentType, "slug", slug, "error", err)
		return model.GoneStatus{ShouldReturn410: false}, false
	}

	snapshot := toGoneDoc(doc)
	return model.GoneStatus{
		ShouldReturn410: snapshot.Hidden(),
		Doc:             snapshot,
	}, true
}

func (c *Classifier) classifyFooter(ctx context.Context, slug string) (model.GoneStatus, bool) {
	links, err := c.source.FetchFooterLinks(ctx)
	if errors.Is(err, content.ErrNotFound) {
		return model.GoneStatus{ShouldReturn410: true}, true
	}
	if err != nil {
		c.logger.Error("footer links fetch failed", "slug", slug, "error", err)
		return model.GoneStatus{ShouldReturn410: false}, false
	}

	for _, link := range links {
		if link.Slug != slug {
			continue
		}
		doc := &model.GoneDoc{
			Title:          link.Label,
			NoIndex:        link.NoIndex,
			SitemapInclude: link.SitemapInclude,
		}
		return model.GoneStatus{ShouldReturn410: doc.Hidden(), Doc: doc}, true
	}
	// A footer sub-link absent from the active footer document is gone,
	// not a generic not-found.
	return model.GoneStatus{ShouldReturn410: true}, true
}

func (c *Classifier) fromCache(ctx context.Context, key string, out any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn("gone cache read failed", "key", key, "error", err)
		}
		c.metrics.IncGoneCacheMiss()
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.metrics.IncGoneCacheMiss()
		return false
	}
	c.metrics.IncGoneCacheHit()
	return true
}

func (c *Classifier) toCache(ctx context.Context, key string, status any) {
	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, raw, cache.GoneTTL); err != nil {
		c.logger.Warn("gone cache write failed", "key", key, "error", err)
	}
}

// toGoneDoc converts a raw document into the render snapshot, normalizing
// the expiry to YYYY-MM-DD.
func toGoneDoc(doc *content.Document) *model.GoneDoc {
	expires := doc.Expires
	if expires != "" {
		if t, err := time.Parse(time.RFC3339, expires); err == nil {
			expires = t.Format("2006-01-02")
		} else if len(expires) >= 10 {
			expires = expires[:10]
		}
	}
	return &model.GoneDoc{
		Title:          doc.Title,
		Bookmaker:      doc.Bookmaker,
		Expires:        expires,
		NoIndex:        doc.NoIndex,
		SitemapInclude: doc.SitemapInclude,
	}
}
