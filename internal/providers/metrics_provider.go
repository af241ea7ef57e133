package providers

import (
	"imgstore/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the asset and view counters.
const (
	ResultOK          = "ok"
	ResultRejected    = "rejected"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncAssetOperation(op, backend, result string)
	ObserveAssetBytes(backend string, size int)
	IncViewsAppended(result string)
	ObserveArchiveDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	assetOps        *prometheus.CounterVec
	assetBytes      *prometheus.HistogramVec
	viewsAppended   *prometheus.CounterVec
	archiveDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncAssetOperation(op, backend, result string) {
	m.assetOps.WithLabelValues(op, backend, result).Inc()
}

func (m *MetricsProvider) ObserveAssetBytes(backend string, size int) {
	m.assetBytes.WithLabelValues(backend).Observe(float64(size))
}

func (m *MetricsProvider) IncViewsAppended(result string) {
	m.viewsAppended.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) ObserveArchiveDuration(duration time.Duration) {
	m.archiveDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imgstore_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imgstore_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "imgstore_cache_hits_total",
			Help: "Total number of report cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "imgstore_cache_misses_total",
			Help: "Total number of report cache misses",
		}),

		assetOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imgstore_asset_operations_total",
			Help: "Asset save/remove operations by backend and result",
		}, []string{"op", "backend", "result"}),

		assetBytes: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imgstore_asset_bytes",
			Help:    "Size of stored images in bytes",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 7),
		}, []string{"backend"}),

		viewsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imgstore_views_appended_total",
			Help: "View log appends by result",
		}, []string{"result"}),

		archiveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgstore_archive_duration_seconds",
			Help:    "Duration of view partition archive runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncAssetOperation(_, _, _ string)                 {}
func (n *noopMetrics) ObserveAssetBytes(_ string, _ int)                {}
func (n *noopMetrics) IncViewsAppended(_ string)                        {}
func (n *noopMetrics) ObserveArchiveDuration(_ time.Duration)           {}
