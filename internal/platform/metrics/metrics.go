package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfdash/internal/domain/dashboard"
)

type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeResults    *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_store_results_total",
			Help: "Store reads by operation and outcome (found, empty, fault)",
		}, []string{"operation", "status"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_fallbacks_total",
			Help: "Responses served from sample data",
		}, []string{"operation"}),
	}
	reg.MustRegister(c.requestsTotal, c.requestDuration, c.storeResults, c.fallbacks)
	return c
}

// Record tracks one finished HTTP request. route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) ObserveStoreResult(operation string, status dashboard.ResultStatus) {
	c.storeResults.WithLabelValues(operation, string(status)).Inc()
}

func (c *Collector) ObserveFallback(operation string) {
	c.fallbacks.WithLabelValues(operation).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
