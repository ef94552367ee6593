// Package metrics exposes Prometheus collectors for billing activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the service reports.
type Metrics struct {
	registry *prometheus.Registry

	BillsGenerated   *prometheus.CounterVec
	AmountBilled     *prometheus.CounterVec
	GenerationErrors *prometheus.CounterVec
	GenerationTime   prometheus.Histogram
	BillsPaid        prometheus.Counter
	OverdueMarked    prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		BillsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "bills_generated_total",
			Help:      "Bills written by bill generation, by category.",
		}, []string{"category"}),
		AmountBilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "amount_billed_total",
			Help:      "Sum of generated bill amounts, by category.",
		}, []string{"category"}),
		GenerationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "bill_generation_errors_total",
			Help:      "Failed bill generation runs, by reason.",
		}, []string{"reason"}),
		GenerationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "letly",
			Name:      "bill_generation_seconds",
			Help:      "Time spent generating and persisting one period.",
			Buckets:   prometheus.DefBuckets,
		}),
		BillsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "bills_paid_total",
			Help:      "Bills moved to paid.",
		}),
		OverdueMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "bills_marked_overdue_total",
			Help:      "Bills moved to overdue by the sweep.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letly",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "letly",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.BillsGenerated,
		m.AmountBilled,
		m.GenerationErrors,
		m.GenerationTime,
		m.BillsPaid,
		m.OverdueMarked,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
