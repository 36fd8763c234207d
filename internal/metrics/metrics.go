// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the resolution engine.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Redirect rule metrics
	IncRuleCacheHit()
	IncRuleCacheMiss()
	IncRuleRefresh(status string) // status: "success" or "failure"

	// Resolver metrics
	IncResolve(outcome string) // outcome: "redirect", "gone", "none"
	IncResolveLoop()
	ObserveResolveDuration(duration time.Duration)

	// Gone classifier metrics
	IncGoneCacheHit()
	IncGoneCacheMiss()
	IncGoneVerdict(contentType string, gone bool)
}
