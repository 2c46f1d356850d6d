package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records hook events as Prometheus metrics on a private
// registry. It implements [PipelineHooks], [CacheHooks] and [SessionHooks].
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Builds         *prometheus.CounterVec
	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	RenderBytes    *prometheus.HistogramVec

	CacheEvents *prometheus.CounterVec

	SessionsActive prometheus.Gauge
	ModeChanges    *prometheus.CounterVec
	Connections    *prometheus.CounterVec
}

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_builds_total",
			Help:      "Diagrams built, by mode and status",
		}, []string{"mode", "status"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Artifacts rendered, by format and status",
		}, []string{"format", "status"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		RenderBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_size_bytes",
			Help:      "Size of rendered artifacts",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
		CacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and result",
		}, []string{"key_type", "result"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Interactive sessions currently held in memory",
		}),
		ModeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_changes_total",
			Help:      "Session mode changes, by target mode",
		}, []string{"mode"}),
		Connections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "User connections, by outcome",
		}, []string{"result"}),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Builds,
		c.Renders,
		c.RenderDuration,
		c.RenderBytes,
		c.CacheEvents,
		c.SessionsActive,
		c.ModeChanges,
		c.Connections,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) OnBuildStart(context.Context, string) {}

func (c *Collector) OnBuildComplete(_ context.Context, mode string, _, _ int, _ time.Duration, err error) {
	c.Builds.WithLabelValues(mode, status(err)).Inc()
}

func (c *Collector) OnRenderStart(context.Context, string) {}

func (c *Collector) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	c.Renders.WithLabelValues(format, status(err)).Inc()
	if err != nil {
		return
	}
	c.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
	c.RenderBytes.WithLabelValues(format).Observe(float64(size))
}

func (c *Collector) OnCacheHit(_ context.Context, keyType string) {
	c.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (c *Collector) OnCacheMiss(_ context.Context, keyType string) {
	c.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (c *Collector) OnCacheSet(_ context.Context, keyType string, _ int) {
	c.CacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (c *Collector) OnSessionCreated(context.Context, string, string) {
	c.SessionsActive.Inc()
}

func (c *Collector) OnModeChange(_ context.Context, _, _, to string) {
	c.ModeChanges.WithLabelValues(to).Inc()
}

func (c *Collector) OnConnect(_ context.Context, _, _ string, added bool) {
	result := "added"
	if !added {
		result = "duplicate"
	}
	c.Connections.WithLabelValues(result).Inc()
}

// OnSessionsExpired is also called for explicit deletes with n == 1.
func (c *Collector) OnSessionsExpired(_ context.Context, n int) {
	c.SessionsActive.Sub(float64(n))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ PipelineHooks = (*Collector)(nil)
	_ CacheHooks    = (*Collector)(nil)
	_ SessionHooks  = (*Collector)(nil)
)
