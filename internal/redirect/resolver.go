package redirect

import (
	"context"
	"log/slog"
	"time"

	"github.com/booldo/booldo/internal/metrics"
	"github.com/booldo/booldo/internal/model"
)

// MaxHops caps redirect chain length. Chains longer than this abort and
// resolve to nothing.
const MaxHops = 5

// Resolver follows redirect-rule chains to their final destination.
type Resolver struct {
	rules   *RuleStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewResolver creates a Resolver over the given rule store.
func NewResolver(rules *RuleStore, logger *slog.Logger, recorder metrics.Recorder) *Resolver {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Resolver{rules: rules, logger: logger, metrics: recorder}
}

// Resolve finds the rule matching path and follows the chain.
//
// Returns a Gone resolution when the matched rule (or any rule downstream
// of it) is a 410; a Redirect resolution carrying the final hop's URL and
// type when a chain ends in an unruled target; nil when no rule matches
// or the chain revisits a path or exceeds MaxHops.
func (r *Resolver) Resolve(ctx context.Context, path string) *model.Resolution {
	start := time.Now()
	defer func() {
		r.metrics.ObserveResolveDuration(time.Since(start))
	}()

	rules := r.rules.Active(ctx)
	if len(rules) == 0 {
		return nil
	}

	visited := map[string]bool{}
	res, aborted := r.resolve(rules, path, visited, 0)
	if aborted {
		res = nil
	}

	switch {
	case res == nil:
		r.metrics.IncResolve("none")
	case res.IsGone():
		r.metrics.IncResolve("gone")
	default:
		r.metrics.IncResolve("redirect")
	}
	return res
}

// resolve walks one hop of the chain. The aborted flag distinguishes a
// loop or hop-cap abort from an ordinary no-match: an abort anywhere in
// the chain discards the whole resolution, so a caller never redirects
// into a cycle.
func (r *Resolver) resolve(rules []model.RedirectRule, path string, visited map[string]bool, depth int) (*model.Resolution, bool) {
	if depth >= MaxHops {
		r.logger.Warn("redirect chain exceeded hop cap, aborting", "path", path, "max_hops", MaxHops)
		r.metrics.IncResolveLoop()
		return nil, true
	}
	key := model.NormalizePath(path)
	if visited[key] {
		r.logger.Warn("redirect chain loops, aborting", "path", path)
		r.metrics.IncResolveLoop()
		return nil, true
	}
	visited[key] = true

	rule := match(rules, path)
	if rule == nil {
		return nil, false
	}

	// A direct 410 mapping always wins, regardless of chaining.
	if rule.RedirectType == model.RedirectGone {
		return &model.Resolution{Kind: model.ResolutionGone}, false
	}
	if rule.TargetURL == "" {
		return nil, false
	}

	// Follow the target: a downstream 410 propagates, a downstream
	// redirect collapses the chain so callers see the final hop.
	next, aborted := r.resolve(rules, rule.TargetURL, visited, depth+1)
	if aborted {
		return nil, true
	}
	if next != nil {
		return next, false
	}

	redirectType := rule.RedirectType
	if !redirectType.IsValid() {
		redirectType = model.RedirectPermanent
	}
	return &model.Resolution{
		Kind:         model.ResolutionRedirect,
		URL:          rule.TargetURL,
		RedirectType: redirectType,
	}, false
}

// match finds the first rule matching path by source, falling back to a
// secondary pass on target URLs so 410 rules expressed on either end of a
// pair still terminate the request.
func match(rules []model.RedirectRule, path string) *model.RedirectRule {
	for i := range rules {
		if rules[i].Matches(path) {
			return &rules[i]
		}
	}
	for i := range rules {
		if rules[i].RedirectType == model.RedirectGone && rules[i].MatchesTarget(path) {
			return &rules[i]
		}
	}
	return nil
}
