package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RuleCacheHits          uint64
	RuleCacheMisses        uint64
	RuleRefreshes          map[string]uint64
	Resolves               map[string]uint64
	ResolveLoops           uint64
	ResolveDurationCount   uint64
	ResolveDurationTotalNs int64
	GoneCacheHits          uint64
	GoneCacheMisses        uint64
	GoneVerdicts           map[string]uint64 // key: contentType:gone|visible
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	ruleCacheHits          uint64
	ruleCacheMisses        uint64
	resolveLoops           uint64
	resolveDurationCount   uint64
	resolveDurationTotalNs int64
	goneCacheHits          uint64
	goneCacheMisses        uint64

	mu            sync.Mutex
	ruleRefreshes map[string]uint64
	resolves      map[string]uint64
	goneVerdicts  map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		ruleRefreshes: make(map[string]uint64),
		resolves:      make(map[string]uint64),
		goneVerdicts:  make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		RuleCacheHits:          atomic.LoadUint64(&m.ruleCacheHits),
		RuleCacheMisses:        atomic.LoadUint64(&m.ruleCacheMisses),
		RuleRefreshes:          copyMap(m.ruleRefreshes),
		Resolves:               copyMap(m.resolves),
		ResolveLoops:           atomic.LoadUint64(&m.resolveLoops),
		ResolveDurationCount:   atomic.LoadUint64(&m.resolveDurationCount),
		ResolveDurationTotalNs: atomic.LoadInt64(&m.resolveDurationTotalNs),
		GoneCacheHits:          atomic.LoadUint64(&m.goneCacheHits),
		GoneCacheMisses:        atomic.LoadUint64(&m.goneCacheMisses),
		GoneVerdicts:           copyMap(m.goneVerdicts),
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *InMemoryRecorder) IncRuleCacheHit()  { atomic.AddUint64(&m.ruleCacheHits, 1) }
func (m *InMemoryRecorder) IncRuleCacheMiss() { atomic.AddUint64(&m.ruleCacheMisses, 1) }

func (m *InMemoryRecorder) IncRuleRefresh(status string) {
	m.mu.Lock()
	m.ruleRefreshes[status]++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncResolve(outcome string) {
	m.mu.Lock()
	m.resolves[outcome]++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncResolveLoop() { atomic.AddUint64(&m.resolveLoops, 1) }

func (m *InMemoryRecorder) ObserveResolveDuration(duration time.Duration) {
	atomic.AddUint64(&m.resolveDurationCount, 1)
	atomic.AddInt64(&m.resolveDurationTotalNs, duration.Nanoseconds())
}

func (m *InMemoryRecorder) IncGoneCacheHit()  { atomic.AddUint64(&m.goneCacheHits, 1) }
func (m *InMemoryRecorder) IncGoneCacheMiss() { atomic.AddUint64(&m.goneCacheMisses, 1) }

func (m *InMemoryRecorder) IncGoneVerdict(contentType string, gone bool) {
	key := contentType + ":visible"
	if gone {
		key = contentType + ":gone"
	}
	m.mu.Lock()
	m.goneVerdicts[key]++
	m.mu.Unlock()
}
