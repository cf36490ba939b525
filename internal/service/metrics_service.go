package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and keeps running
// totals for the health snapshot.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec
	feedFetches     *prometheus.CounterVec
	feedDuration    prometheus.Observer
	timetableSource *prometheus.CounterVec
	alarmsComputed  *prometheus.CounterVec
	alarmLeadTime   prometheus.Observer
	refreshJobs     *prometheus.CounterVec

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
	alarmCount           uint64
}

// NewMetricsService registers the planner's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of store queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	feedFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_feed_fetches_total",
		Help: "Timetable feed downloads by outcome",
	}, []string{"outcome"})

	feedDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_feed_fetch_seconds",
		Help:    "Duration of timetable feed downloads",
		Buckets: prometheus.DefBuckets,
	})

	timetableSource := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_source_total",
		Help: "Where served timetables came from",
	}, []string{"source"})

	alarmsComputed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alarms_computed_total",
		Help: "Alarm computations by next event kind",
	}, []string{"kind"})

	alarmLeadTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alarm_offset_minutes",
		Help:    "Total minutes between alarm and event start",
		Buckets: []float64{30, 60, 90, 120, 150, 180, 240},
	})

	refreshJobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_refresh_jobs_total",
		Help: "Background timetable refresh jobs by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration, feedFetches, feedDuration, timetableSource, alarmsComputed, alarmLeadTime, refreshJobs, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		dbQueryDuration: dbQueryDuration,
		feedFetches:     feedFetches,
		feedDuration:    feedDuration,
		timetableSource: timetableSource,
		alarmsComputed:  alarmsComputed,
		alarmLeadTime:   alarmLeadTime,
		refreshJobs:     refreshJobs,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry for tests and extra collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records store query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveFeedFetch records one timetable download.
func (m *MetricsService) ObserveFeedFetch(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.feedFetches.WithLabelValues(outcome).Inc()
	m.feedDuration.Observe(duration.Seconds())
}

// RecordTimetableSource counts which tier served a timetable.
func (m *MetricsService) RecordTimetableSource(source string) {
	if m == nil {
		return
	}
	m.timetableSource.WithLabelValues(source).Inc()
}

// RecordAlarm counts a computed alarm and its total offset.
func (m *MetricsService) RecordAlarm(kind models.EventKind, offsetMinutes int) {
	if m == nil {
		return
	}
	m.alarmsComputed.WithLabelValues(string(kind)).Inc()
	m.alarmLeadTime.Observe(float64(offsetMinutes))
	atomic.AddUint64(&m.alarmCount, 1)
}

// RecordRefreshJob counts background refresh outcomes.
func (m *MetricsService) RecordRefreshJob(outcome string) {
	if m == nil {
		return
	}
	m.refreshJobs.WithLabelValues(outcome).Inc()
}

// Snapshot returns aggregated counters for the health endpoint.
func (m *MetricsService) Snapshot() models.MetricsSnapshot {
	if m == nil {
		return models.MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	dbDuration := atomic.LoadUint64(&m.dbQueryDurationTotal)

	var cacheRatio float64
	if totalLookups := hits + misses; totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgDBMs float64
	if dbCount > 0 {
		avgDBMs = float64(dbDuration) / float64(dbCount) / float64(time.Millisecond)
	}

	return models.MetricsSnapshot{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DBQueryCount:             dbCount,
		AverageDBQueryDurationMs: avgDBMs,
		AlarmsComputed:           atomic.LoadUint64(&m.alarmCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
