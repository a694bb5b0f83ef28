package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the storefront's Prometheus metrics.
type Manager struct {
	Registry          *prometheus.Registry
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	CacheHitsTotal    *prometheus.CounterVec
	CacheMissesTotal  *prometheus.CounterVec
}

func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by method and path.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	cacheHitsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits by resource type.",
	}, []string{"resource"})

	cacheMissesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses by resource type.",
	}, []string{"resource"})

	registry.MustRegister(
		httpRequestsTotal,
		httpLatency,
		cacheHitsTotal,
		cacheMissesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPLatency:       httpLatency,
		CacheHitsTotal:    cacheHitsTotal,
		CacheMissesTotal:  cacheMissesTotal,
	}
}

// CacheHit and CacheMiss are nil-safe so usecases can run without a
// metrics manager wired in.
func (m *Manager) CacheHit(resource string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(resource).Inc()
}

func (m *Manager) CacheMiss(resource string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(resource).Inc()
}

// StartServer exposes /metrics on its own port. A blank port disables
// the server.
func StartServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
