package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/booldo/booldo/internal/config"
	"github.com/booldo/booldo/internal/content"
	"github.com/booldo/booldo/internal/filter"
	"github.com/booldo/booldo/internal/model"
)

// ResolveHandler is the internal resolution endpoint for the renderer.
// It mirrors the dispatcher's decision pipeline but answers JSON,
// including the decoded filter selection for listing pages so the
// renderer never re-implements the codec.
type ResolveHandler struct {
	resolver Resolver
	offers   OfferClassifier
	source   content.Source
	routing  *config.Routing
	logger   *slog.Logger
}

// NewResolveHandler creates a ResolveHandler.
func NewResolveHandler(resolver Resolver, offers OfferClassifier, source content.Source, routing *config.Routing, logger *slog.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
		offers:   offers,
		source:   source,
		routing:  routing,
		logger:   logger,
	}
}

// ResolveResponse is the engine verdict for one path.
type ResolveResponse struct {
	Action   string `json:"action"` // "pass", "redirect", "gone", "render"
	Location string `json:"location,omitempty"`
	Status   int    `json:"status,omitempty"`

	Variant string         `json:"variant,omitempty"`
	Doc     *model.GoneDoc `json:"doc,omitempty"`

	Country     string                 `json:"country,omitempty"`
	Filters     *model.FilterSelection `json:"filters,omitempty"`
	Combination *CombinationResponse   `json:"combination,omitempty"`
}

// CombinationResponse describes a decomposed combination segment.
type CombinationResponse struct {
	Type        string                `json:"type"`
	Parts       []string              `json:"parts"`
	Selection   model.FilterSelection `json:"selection"`
	Features    []string              `json:"features,omitempty"`
	Description string                `json:"description"`
}

// Resolve handles GET /internal/resolve?path=/gh/free-bet.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		writeErrorJSON(w, http.StatusBadRequest, "INVALID_PATH", "query parameter 'path' must be an absolute path")
		return
	}

	if h.routing.Excluded(path) {
		writeJSON(w, http.StatusOK, ResolveResponse{Action: "pass"})
		return
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	country := ""
	if h.routing.IsCountry(segments[0]) {
		country = segments[0]
	}

	if country != "" && len(segments) >= 2 {
		slug := segments[len(segments)-1]
		status := h.offers.ClassifyOffer(r.Context(), country, slug)
		if status.ShouldReturn410 {
			variant := GoneMissing
			switch {
			case status.IsExpired:
				variant = GoneExpired
			case status.IsHidden:
				variant = GoneHidden
			}
			writeJSON(w, http.StatusOK, ResolveResponse{
				Action:  "gone",
				Variant: string(variant),
				Doc:     status.Offer,
			})
			return
		}
	}

	if res := h.resolver.Resolve(r.Context(), path); res != nil {
		if res.IsGone() {
			writeJSON(w, http.StatusOK, ResolveResponse{
				Action:  "gone",
				Variant: string(GoneMissing),
			})
			return
		}
		writeJSON(w, http.StatusOK, ResolveResponse{
			Action:   "redirect",
			Location: res.URL,
			Status:   res.RedirectType.StatusCode(),
		})
		return
	}

	if country == "" {
		writeJSON(w, http.StatusOK, ResolveResponse{Action: "pass"})
		return
	}

	writeJSON(w, http.StatusOK, h.renderVerdict(r, country, path, segments))
}

// renderVerdict decodes listing-page filters for paths the engine lets
// through. Option fetch failures degrade to an unfiltered render verdict
// rather than an error.
func (h *ResolveHandler) renderVerdict(r *http.Request, country, path string, segments []string) ResolveResponse {
	resp := ResolveResponse{Action: "render", Country: country}

	universe, err := h.source.FetchOptions(r.Context(), country)
	if err != nil {
		h.logger.Error("option universe fetch failed", "country", country, "error", err)
		return resp
	}

	sel := filter.ParseURL(country, path, r.URL.Query(), universe)
	if !sel.IsEmpty() {
		resp.Filters = &sel
	}

	// A single hyphenated segment below the country may be a combination
	// page; decompose it when it spans more than one filter.
	if len(segments) == 2 && strings.Contains(segments[1], "-") && sel.Count() <= 1 {
		features := make([]model.FilterOption, 0, len(h.routing.Features))
		for _, f := range h.routing.Features {
			features = append(features, model.FilterOption{Name: f})
		}
		if d := filter.ParseCombination(segments[1], universe, features); d != nil && d.Selection.Count() > 1 {
			resp.Combination = &CombinationResponse{
				Type:        d.Combination.CombinationType(),
				Parts:       d.Combination.Parts,
				Selection:   d.Selection,
				Features:    d.Features,
				Description: d.Describe(),
			}
		}
	}

	return resp
}
