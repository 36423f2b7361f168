// Package metrics collects Prometheus metrics for the HTTP API and the persistence gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request, gateway and rate limit metrics.
// It satisfies gateway.Observer.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	gatewayOps      *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipebox_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatewayOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_gateway_operations_total",
			Help: "Gateway operations by operation, key and outcome",
		}, []string{"op", "key", "outcome"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipebox_gateway_latency_seconds",
			Help:    "Gateway operation latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		}, []string{"limiter"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.gatewayOps,
		c.gatewayLatency,
		c.rateLimited,
	)
	return c
}

// RecordRequest records a finished HTTP request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveGateway records one gateway call
func (c *Collector) ObserveGateway(op, key, outcome string, elapsed time.Duration) {
	c.gatewayOps.WithLabelValues(op, key, outcome).Inc()
	c.gatewayLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RecordRateLimited counts a request rejected by the named limiter
func (c *Collector) RecordRateLimited(limiter string) {
	c.rateLimited.WithLabelValues(limiter).Inc()
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
