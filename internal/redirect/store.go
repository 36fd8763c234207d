// Package redirect resolves request paths against the redirect-rule set,
// following chains to their final destination.
package redirect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/booldo/booldo/internal/cache"
	"github.com/booldo/booldo/internal/content"
	"github.com/booldo/booldo/internal/metrics"
	"github.com/booldo/booldo/internal/model"
)

const ruleSnapshotKey = cache.RuleKeyPrefix + "active"

// RuleStore holds the active redirect rules, refreshed lazily from the
// content service once the snapshot exceeds its TTL. A failed refresh
// keeps the previous snapshot: stale rules beat failing the request.
type RuleStore struct {
	source  content.Source
	store   cache.Store
	clock   cache.Clock
	ttl     time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder

	// Last known good set, kept across store expiry and fetch failures.
	mu        sync.RWMutex
	lastGood  []model.RedirectRule
	fetchedAt time.Time
}

// NewRuleStore creates a RuleStore.
func NewRuleStore(source content.Source, store cache.Store, clock cache.Clock, logger *slog.Logger, recorder metrics.Recorder) *RuleStore {
	if clock == nil {
		clock = cache.SystemClock{}
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RuleStore{
		source:  source,
		store:   store,
		clock:   clock,
		ttl:     cache.RuleTTL,
		logger:  logger,
		metrics: recorder,
	}
}

// Active returns the current active rule set, refreshing it when the
// snapshot is empty or older than the TTL. Refresh failures are logged
// and the previous snapshot is returned.
func (s *RuleStore) Active(ctx context.Context) []model.RedirectRule {
	if raw, err := s.store.Get(ctx, ruleSnapshotKey); err == nil {
		var rules []model.RedirectRule
		if err := json.Unmarshal(raw, &rules); err == nil {
			s.metrics.IncRuleCacheHit()
			return rules
		}
		// Corrupt snapshot: fall through to refetch.
		s.logger.Warn("discarding corrupt rule snapshot", "error", err)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		// Store backend error: serve the last known good set.
		s.logger.Error("rule cache read failed", "error", err)
		return s.snapshot()
	}

	s.metrics.IncRuleCacheMiss()
	rules, err := s.source.FetchRules(ctx)
	if err != nil {
		s.metrics.IncRuleRefresh("failure")
		s.logger.Error("redirect rule refresh failed, keeping stale snapshot", "error", err)
		return s.snapshot()
	}

	active := rules[:0]
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}

	if raw, err := json.Marshal(active); err == nil {
		if err := s.store.Set(ctx, ruleSnapshotKey, raw, s.ttl); err != nil {
			s.logger.Warn("rule cache write failed", "error", err)
		}
	}

	s.mu.Lock()
	s.lastGood = active
	s.fetchedAt = s.clock.Now()
	s.mu.Unlock()

	s.metrics.IncRuleRefresh("success")
	s.logger.Info("redirect rules refreshed", "count", len(active))
	return active
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *RuleStore) Invalidate(ctx context.Context) error {
	return s.store.Purge(ctx, cache.RuleKeyPrefix)
}

// FetchedAt returns when the last successful refresh happened.
func (s *RuleStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func (s *RuleStore) snapshot() []model.RedirectRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGood
}
