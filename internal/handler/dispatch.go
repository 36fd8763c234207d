package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/booldo/booldo/internal/config"
	"github.com/booldo/booldo/internal/model"
)

// ResolveHeader marks responses the engine declined to short-circuit.
const ResolveHeader = "X-Resolve"

// Resolver follows redirect-rule chains for a request path.
type Resolver interface {
	Resolve(ctx context.Context, path string) *model.Resolution
}

// OfferClassifier decides whether a country-scoped offer is gone.
type OfferClassifier interface {
	ClassifyOffer(ctx context.Context, country, slug string) model.OfferStatus
}

// Dispatcher is the catch-all request handler. Per request it checks, in
// order: excluded prefixes, offer gone status, redirect rules. Anything
// the engine does not short-circuit is answered pass-through for the
// downstream renderer.
type Dispatcher struct {
	resolver Resolver
	offers   OfferClassifier
	routing  *config.Routing
	baseURL  string
	page     *GonePage
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(resolver Resolver, offers OfferClassifier, routing *config.Routing, baseURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		offers:   offers,
		routing:  routing,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		page:     NewGonePage(),
		logger:   logger,
	}
}

// Dispatch handles GET /* for every path the router does not own.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if d.routing.Excluded(path) {
		d.passThrough(w)
		return
	}

	// Offer paths are shaped /{country}/.../{slug}; an expired, hidden
	// or vanished offer is gone before any redirect rule is consulted.
	if country, slug, ok := d.offerPath(path); ok {
		status := d.offers.ClassifyOffer(r.Context(), country, slug)
		if status.ShouldReturn410 {
			variant := GoneMissing
			switch {
			case status.IsExpired:
				variant = GoneExpired
			case status.IsHidden:
				variant = GoneHidden
			}
			d.logger.Info("offer gone",
				"path", path,
				"country", country,
				"slug", slug,
				"variant", string(variant),
			)
			d.serveGone(w, r, variant, status.Offer)
			return
		}
	}

	if res := d.resolver.Resolve(r.Context(), path); res != nil {
		if res.IsGone() {
			d.logger.Info("rule gone", "path", path)
			d.serveGone(w, r, GoneMissing, nil)
			return
		}

		target := d.absolutize(res.URL)
		d.logger.Debug("redirect",
			"path", path,
			"target", target,
			"type", string(res.RedirectType),
		)
		w.Header().Set("Cache-Control", "private, max-age=0")
		http.Redirect(w, r, target, res.RedirectType.StatusCode())
		return
	}

	d.passThrough(w)
}

// offerPath splits /{country}/.../{slug} into country and slug. Paths
// outside the configured countries are not offer paths.
func (d *Dispatcher) offerPath(path string) (country, slug string, ok bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" {
		return "", "", false
	}
	if !d.routing.IsCountry(segments[0]) {
		return "", "", false
	}
	return segments[0], segments[len(segments)-1], true
}

// absolutize resolves a relative rule target against the base URL.
func (d *Dispatcher) absolutize(target string) string {
	switch {
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		return target
	case strings.HasPrefix(target, "/"):
		return d.baseURL + target
	default:
		return d.baseURL + "/" + target
	}
}

func (d *Dispatcher) serveGone(w http.ResponseWriter, r *http.Request, variant GoneVariant, doc *model.GoneDoc) {
	full := d.routing.IsBot(r.UserAgent())
	d.page.Render(w, full, variant, doc)
}

func (d *Dispatcher) passThrough(w http.ResponseWriter) {
	w.Header().Set(ResolveHeader, "pass")
	w.WriteHeader(http.StatusNoContent)
}
