package filter

import (
	"strings"

	"github.com/booldo/booldo/internal/model"
)

// DefaultFeatureVocabulary lists the free-form feature tags recognized at
// the tail of a combination segment.
var DefaultFeatureVocabulary = []model.FilterOption{
	{Name: "Mobile Optimized"},
	{Name: "Live Betting"},
	{Name: "Cash Out"},
	{Name: "Quick Payout"},
}

// Decomposition is the result of splitting a combination segment into
// category assignments. It is constructed per request and never persisted.
type Decomposition struct {
	Combination model.CombinationFilter `json:"combination"`
	Selection   model.FilterSelection   `json:"selection"`
	Features    []string                `json:"features,omitempty"`
}

// maxSlugTokens bounds how many hyphen tokens a single option name may
// span during greedy matching.
const maxSlugTokens = 4

// ParseCombination decomposes a hyphen-joined multi-filter segment.
//
// The segment carries no delimiters between categories, so assignment is
// by positional priority: the first match position is tested against bonus
// types, the second against bookmakers, the third against payment methods
// and the fourth against licenses. Because option names may themselves
// contain hyphens, each position greedily consumes the longest run of
// tokens that slugifies to a known option before moving on. A position
// whose tokens match nothing in its assigned category is dropped, not
// reassigned. Tokens past the fourth position are matched against the
// feature vocabulary or passed through verbatim.
//
// This is a best-effort heuristic: a segment like "free-bet-1xbet" is
// genuinely ambiguous without the option universe, and unresolvable
// tokens disappear silently rather than failing the parse.
func ParseCombination(segment string, universe *model.OptionUniverse, features []model.FilterOption) *Decomposition {
	tokens := strings.Split(segment, "-")
	if len(tokens) < 2 {
		return nil
	}
	if features == nil {
		features = DefaultFeatureVocabulary
	}

	d := &Decomposition{
		Combination: model.CombinationFilter{Parts: tokens, Original: segment},
	}

	categories := []struct {
		options []model.FilterOption
		assign  func(name string)
	}{
		{universe.BonusTypes, func(n string) { d.Selection.BonusTypes = append(d.Selection.BonusTypes, n) }},
		{universe.Bookmakers, func(n string) { d.Selection.Bookmakers = append(d.Selection.Bookmakers, n) }},
		{universe.PaymentMethods, func(n string) { d.Selection.Advanced = append(d.Selection.Advanced, n) }},
		{universe.Licenses, func(n string) { d.Selection.Advanced = append(d.Selection.Advanced, n) }},
	}

	pos := 0
	for len(tokens) > 0 && pos < len(categories) {
		cat := categories[pos]
		name, consumed := matchLongest(tokens, cat.options)
		if consumed == 0 {
			// Assigned category has no match: drop one token.
			tokens = tokens[1:]
			pos++
			continue
		}
		cat.assign(name)
		tokens = tokens[consumed:]
		pos++
	}

	// Trailing tokens are feature tags.
	for len(tokens) > 0 {
		name, consumed := matchLongest(tokens, features)
		if consumed == 0 {
			d.Features = append(d.Features, tokens[0])
			tokens = tokens[1:]
			continue
		}
		d.Features = append(d.Features, name)
		tokens = tokens[consumed:]
	}

	return d
}

// matchLongest finds the longest token prefix that slugifies to an option
// name. Returns the canonical name and the number of tokens consumed, or
// ("", 0) when nothing matches.
func matchLongest(tokens []string, options []model.FilterOption) (string, int) {
	limit := maxSlugTokens
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for n := limit; n >= 1; n-- {
		candidate := strings.Join(tokens[:n], "-")
		if containsSlug(candidate, options) {
			return Unslugify(candidate, options), n
		}
	}
	return "", 0
}

// Describe renders the decomposition as display text: bonus type, then
// bookmaker, then payment method, then license, then features, joined
// with " + ".
func (d *Decomposition) Describe() string {
	parts := make([]string, 0, 5)
	parts = append(parts, d.Selection.BonusTypes...)
	parts = append(parts, d.Selection.Bookmakers...)
	parts = append(parts, d.Selection.Advanced...)
	parts = append(parts, d.Features...)
	return strings.Join(parts, " + ")
}
