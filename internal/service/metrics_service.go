package service

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/horarium/timetable-api/internal/models"
)

// MetricsService records service counters both for Prometheus scraping and
// for the lightweight JSON snapshot endpoint.
type MetricsService interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
	ObserveRun(duration time.Duration, enumerated, valid int, truncated bool)
	ObserveCacheHit()
	ObserveCacheMiss()
	ObserveExport(format string)
	Snapshot() models.SystemMetrics
	Registry() *prometheus.Registry
}

type metricsService struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	runDuration   prometheus.Histogram
	runsTotal     prometheus.Counter
	runsTruncated prometheus.Counter
	combosTotal   prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	exportsTotal  *prometheus.CounterVec

	reqCount      uint64
	reqDurationMS uint64
	runCount      uint64
	runDurationMS uint64
	comboCount    uint64
	hitCount      uint64
	missCount     uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() MetricsService {
	registry := prometheus.NewRegistry()

	s := &metricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "schedule_run_duration_seconds",
			Help:    "Enumeration and scoring latency per run.",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5, 15},
		}),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Total scoring runs executed.",
		}),
		runsTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_runs_truncated_total",
			Help: "Runs stopped at the enumeration cap.",
		}),
		combosTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_combinations_enumerated_total",
			Help: "Conflict-free combinations enumerated across runs.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_cache_hits_total",
			Help: "Memoized run lookups served from cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_cache_misses_total",
			Help: "Memoized run lookups that missed.",
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_exports_total",
			Help: "Export jobs completed by format.",
		}, []string{"format"}),
	}

	registry.MustRegister(
		s.httpRequests,
		s.httpDuration,
		s.runDuration,
		s.runsTotal,
		s.runsTruncated,
		s.combosTotal,
		s.cacheHits,
		s.cacheMisses,
		s.exportsTotal,
	)

	return s
}

func (s *metricsService) ObserveRequest(method, path string, status int, duration time.Duration) {
	s.httpRequests.WithLabelValues(method, path, statusLabel(status)).Inc()
	s.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	atomic.AddUint64(&s.reqCount, 1)
	atomic.AddUint64(&s.reqDurationMS, uint64(duration.Milliseconds()))
}

func (s *metricsService) ObserveRun(duration time.Duration, enumerated, valid int, truncated bool) {
	s.runDuration.Observe(duration.Seconds())
	s.runsTotal.Inc()
	s.combosTotal.Add(float64(enumerated))
	if truncated {
		s.runsTruncated.Inc()
	}
	atomic.AddUint64(&s.runCount, 1)
	atomic.AddUint64(&s.runDurationMS, uint64(duration.Milliseconds()))
	atomic.AddUint64(&s.comboCount, uint64(enumerated))
}

func (s *metricsService) ObserveCacheHit() {
	s.cacheHits.Inc()
	atomic.AddUint64(&s.hitCount, 1)
}

func (s *metricsService) ObserveCacheMiss() {
	s.cacheMisses.Inc()
	atomic.AddUint64(&s.missCount, 1)
}

func (s *metricsService) ObserveExport(format string) {
	s.exportsTotal.WithLabelValues(format).Inc()
}

func (s *metricsService) Snapshot() models.SystemMetrics {
	requests := atomic.LoadUint64(&s.reqCount)
	reqMS := atomic.LoadUint64(&s.reqDurationMS)
	runs := atomic.LoadUint64(&s.runCount)
	runMS := atomic.LoadUint64(&s.runDurationMS)
	hits := atomic.LoadUint64(&s.hitCount)
	misses := atomic.LoadUint64(&s.missCount)

	snapshot := models.SystemMetrics{
		RequestsTotal:          requests,
		RunsTotal:              runs,
		CombinationsEnumerated: atomic.LoadUint64(&s.comboCount),
		CacheHits:              hits,
		CacheMisses:            misses,
		Goroutines:             runtime.NumGoroutine(),
		GeneratedAt:            time.Now().UTC(),
	}
	if requests > 0 {
		snapshot.AverageRequestDurationMs = float64(reqMS) / float64(requests)
	}
	if runs > 0 {
		snapshot.AverageRunDurationMs = float64(runMS) / float64(runs)
	}
	if total := hits + misses; total > 0 {
		snapshot.CacheHitRatio = float64(hits) / float64(total)
	}
	return snapshot
}

func (s *metricsService) Registry() *prometheus.Registry {
	return s.registry
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
