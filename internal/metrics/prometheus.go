package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// resolveDurationBuckets in seconds, tuned for an in-memory hot path with
// an occasional content-service fetch.
var resolveDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}

// PrometheusRecorder exposes engine metrics through a Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	ruleCacheHits   prometheus.Counter
	ruleCacheMisses prometheus.Counter
	ruleRefreshes   *prometheus.CounterVec

	resolves        *prometheus.CounterVec
	resolveLoops    prometheus.Counter
	resolveDuration prometheus.Histogram

	goneCacheHits   prometheus.Counter
	goneCacheMisses prometheus.Counter
	goneVerdicts    *prometheus.CounterVec
}

// NewPrometheus creates a PrometheusRecorder with its own registry.
func NewPrometheus(namespace string) *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		ruleCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rule_cache_hits_total",
			Help: "Redirect-rule snapshot cache hits.",
		}),
		ruleCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rule_cache_misses_total",
			Help: "Redirect-rule snapshot cache misses.",
		}),
		ruleRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rule_refreshes_total",
			Help: "Redirect-rule refresh attempts by status.",
		}, []string{"status"}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "resolves_total",
			Help: "Redirect resolutions by outcome.",
		}, []string{"outcome"}),
		resolveLoops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "resolve_loops_total",
			Help: "Redirect chains aborted for looping or exceeding the hop cap.",
		}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "resolve_duration_seconds",
			Help:    "Time spent resolving a request path.",
			Buckets: resolveDurationBuckets,
		}),
		goneCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "gone_cache_hits_total",
			Help: "Gone-status cache hits.",
		}),
		goneCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "gone_cache_misses_total",
			Help: "Gone-status cache misses.",
		}),
		goneVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "gone_verdicts_total",
			Help: "Gone classifier verdicts by content type and result.",
		}, []string{"content_type", "result"}),
	}

	registry.MustRegister(
		r.ruleCacheHits, r.ruleCacheMisses, r.ruleRefreshes,
		r.resolves, r.resolveLoops, r.resolveDuration,
		r.goneCacheHits, r.goneCacheMisses, r.goneVerdicts,
	)
	return r
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) IncRuleCacheHit()             { r.ruleCacheHits.Inc() }
func (r *PrometheusRecorder) IncRuleCacheMiss()            { r.ruleCacheMisses.Inc() }
func (r *PrometheusRecorder) IncRuleRefresh(status string) { r.ruleRefreshes.WithLabelValues(status).Inc() }
func (r *PrometheusRecorder) IncResolve(outcome string)    { r.resolves.WithLabelValues(outcome).Inc() }
func (r *PrometheusRecorder) IncResolveLoop()              { r.resolveLoops.Inc() }

func (r *PrometheusRecorder) ObserveResolveDuration(duration time.Duration) {
	r.resolveDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) IncGoneCacheHit()  { r.goneCacheHits.Inc() }
func (r *PrometheusRecorder) IncGoneCacheMiss() { r.goneCacheMisses.Inc() }

func (r *PrometheusRecorder) IncGoneVerdict(contentType string, gone bool) {
	result := "visible"
	if gone {
		result = "gone"
	}
	r.goneVerdicts.WithLabelValues(contentType, result).Inc()
}
