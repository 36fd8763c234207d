package filter

import (
	"net/url"
	"strings"

	"github.com/booldo/booldo/internal/model"
)

// BuildURL encodes a filter selection as a URL for the given country.
//
// No filters selected yields the country root. A single filter across all
// categories yields the pretty form /{country}/{slug}. Anything else falls
// back to the query-string form on /{country}/offers.
func BuildURL(country string, sel model.FilterSelection) string {
	if sel.IsEmpty() {
		return "/" + country
	}

	if len(sel.BonusTypes) == 1 && len(sel.Bookmakers) == 0 && len(sel.Advanced) == 0 {
		return "/" + country + "/" + Slugify(sel.BonusTypes[0])
	}
	if len(sel.Bookmakers) == 1 && len(sel.BonusTypes) == 0 && len(sel.Advanced) == 0 {
		return "/" + country + "/" + Slugify(sel.Bookmakers[0])
	}
	if len(sel.Advanced) == 1 && len(sel.BonusTypes) == 0 && len(sel.Bookmakers) == 0 {
		return "/" + country + "/" + Slugify(sel.Advanced[0])
	}

	params := make([]string, 0, 3)
	if len(sel.BonusTypes) > 0 {
		params = append(params, "bonustypes="+joinSlugs(sel.BonusTypes))
	}
	if len(sel.Bookmakers) > 0 {
		params = append(params, "bookmakers="+joinSlugs(sel.Bookmakers))
	}
	if len(sel.Advanced) > 0 {
		params = append(params, "advanced="+joinSlugs(sel.Advanced))
	}
	return "/" + country + "/offers?" + strings.Join(params, "&")
}

func joinSlugs(names []string) string {
	slugs := make([]string, len(names))
	for i, n := range names {
		slugs[i] = Slugify(n)
	}
	return strings.Join(slugs, ",")
}

// ParseURL decodes a request path and query back into a filter selection
// against the country's option universe.
//
// A pretty path segment is tried against each category in priority order:
// bonus type, then bookmaker, then advanced. The first category whose
// universe contains the slug wins. The query-string form on /offers splits
// each parameter on commas and re-resolves every token through Unslugify.
func ParseURL(country, path string, query url.Values, universe *model.OptionUniverse) model.FilterSelection {
	var sel model.FilterSelection
	if universe == nil {
		return sel
	}

	if model.NormalizePath(path) == "/"+country+"/offers" {
		sel.BonusTypes = parseParam(query.Get("bonustypes"), universe.BonusTypes)
		sel.Bookmakers = parseParam(query.Get("bookmakers"), universe.Bookmakers)
		sel.Advanced = parseParam(query.Get("advanced"), universe.Advanced())
		return sel
	}

	prefix := "/" + country + "/"
	if !strings.HasPrefix(path, prefix) {
		return sel
	}
	slug := strings.TrimPrefix(model.NormalizePath(path), prefix)
	if slug == "" || strings.Contains(slug, "/") {
		return sel
	}

	switch {
	case containsSlug(slug, universe.BonusTypes):
		sel.BonusTypes = []string{Unslugify(slug, universe.BonusTypes)}
	case containsSlug(slug, universe.Bookmakers):
		sel.Bookmakers = []string{Unslugify(slug, universe.Bookmakers)}
	case containsSlug(slug, universe.Advanced()):
		sel.Advanced = []string{Unslugify(slug, universe.Advanced())}
	}
	return sel
}

// parseParam decodes one comma-separated query parameter. Tokens are
// title-cased back to spaced names first, then re-resolved against the
// option list so canonical casing wins over the mechanical conversion.
func parseParam(raw string, options []model.FilterOption) []string {
	if raw == "" {
		return nil
	}
	tokens := strings.Split(raw, ",")
	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		name := titleCase(tok)
		if slug := Slugify(name); containsSlug(slug, options) {
			name = Unslugify(slug, options)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	return names
}
