// Package metrics 定義服務的 Prometheus 指標
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// 快取
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache entries evicted or expired",
		},
		[]string{"cache"},
	)

	// 上游模型
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gemini_request_duration_seconds",
			Help:    "Duration of generateContent calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"operation", "status"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_errors_total",
			Help: "Total number of failed generateContent calls by error kind",
		},
		[]string{"kind"},
	)

	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gemini_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// 解析
	ParseStrategyUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_parse_strategy_total",
			Help: "Number of responses recovered by each parse strategy",
		},
		[]string{"format", "strategy"},
	)

	ParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_parse_failures_total",
			Help: "Number of responses no strategy could recover",
		},
		[]string{"format"},
	)

	RecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_records_dropped_total",
			Help: "Number of parsed records dropped by validation",
		},
	)

	SimulatedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_simulated_total",
			Help: "Number of batches served from the simulated fallback",
		},
	)
)

// RecordHTTPRequest 記錄一次 HTTP 請求
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordUpstream 記錄一次上游呼叫
func RecordUpstream(operation string, status int, duration time.Duration) {
	UpstreamDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(duration.Seconds())
}
