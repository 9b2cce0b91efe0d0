package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// matcherMetrics contains Prometheus metrics for the matcher and the
// optional pattern cache.
type matcherMetrics struct {
	invalidTemplateSkips prometheus.Counter
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	cacheEvictions       prometheus.Counter
	cacheSize            prometheus.Gauge
}

var (
	matcherMetricsInstance *matcherMetrics
	matcherMetricsOnce     sync.Once
)

// routerMetrics returns the singleton matcher metrics instance.
func routerMetrics() *matcherMetrics {
	matcherMetricsOnce.Do(func() {
		matcherMetricsInstance = &matcherMetrics{
			invalidTemplateSkips: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "signpost",
					Subsystem: "router",
					Name:      "invalid_template_skips_total",
					Help:      "Total number of routes skipped during matching because their path template failed to compile",
				},
			),
			cacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "signpost",
					Subsystem: "router",
					Name:      "pattern_cache_hits_total",
					Help:      "Total number of compiled pattern cache hits",
				},
			),
			cacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "signpost",
					Subsystem: "router",
					Name:      "pattern_cache_misses_total",
					Help:      "Total number of compiled pattern cache misses",
				},
			),
			cacheEvictions: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "signpost",
					Subsystem: "router",
					Name:      "pattern_cache_evictions_total",
					Help:      "Total number of compiled pattern cache evictions",
				},
			),
			cacheSize: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "signpost",
					Subsystem: "router",
					Name:      "pattern_cache_size",
					Help:      "Current number of entries in the compiled pattern cache",
				},
			),
		}
	})
	return matcherMetricsInstance
}
