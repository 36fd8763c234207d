package metrics

import "time"

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncRuleCacheHit()                              {}
func (n *NoopRecorder) IncRuleCacheMiss()                             {}
func (n *NoopRecorder) IncRuleRefresh(status string)                  {}
func (n *NoopRecorder) IncResolve(outcome string)                     {}
func (n *NoopRecorder) IncResolveLoop()                               {}
func (n *NoopRecorder) ObserveResolveDuration(duration time.Duration) {}
func (n *NoopRecorder) IncGoneCacheHit()                              {}
func (n *NoopRecorder) IncGoneCacheMiss()                             {}
func (n *NoopRecorder) IncGoneVerdict(contentType string, gone bool)  {}
