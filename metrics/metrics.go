// Package metrics exposes Prometheus counters for the order workflow and
// a latency histogram for HTTP handlers.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mug-life-api/models"
)

// OrderMetrics counts order outcomes and revenue per branch. All methods
// are safe on a nil receiver so tests can run without a registry.
type OrderMetrics struct {
	placed   *prometheus.CounterVec
	rejected *prometheus.CounterVec
	revenue  *prometheus.CounterVec
	restocks *prometheus.CounterVec
}

func NewOrderMetrics() *OrderMetrics {
	m := &OrderMetrics{
		placed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "muglife",
			Name:      "orders_placed_total",
			Help:      "Orders successfully confirmed.",
		}, []string{"branch"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "muglife",
			Name:      "orders_rejected_total",
			Help:      "Orders rejected for insufficient stock.",
		}, []string{"branch"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "muglife",
			Name:      "revenue_rm_total",
			Help:      "Revenue in RM after discounts.",
		}, []string{"branch"}),
		restocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "muglife",
			Name:      "restocks_total",
			Help:      "Restock operations performed.",
		}, []string{"branch", "resource"}),
	}
	prometheus.MustRegister(m.placed, m.rejected, m.revenue, m.restocks)
	return m
}

func (m *OrderMetrics) OrderPlaced(branch models.Branch, total float64) {
	if m == nil {
		return
	}
	m.placed.WithLabelValues(string(branch)).Inc()
	m.revenue.WithLabelValues(string(branch)).Add(total)
}

func (m *OrderMetrics) OrderRejected(branch models.Branch) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(string(branch)).Inc()
}

func (m *OrderMetrics) Restocked(branch models.Branch, resource models.Resource) {
	if m == nil {
		return
	}
	m.restocks.WithLabelValues(string(branch), string(resource)).Inc()
}

// RequestMetrics instruments HTTP traffic.
type RequestMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewRequestMetrics() *RequestMetrics {
	m := &RequestMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "muglife",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "muglife",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"path"}),
	}
	prometheus.MustRegister(m.requests, m.latency)
	return m
}

// Middleware records count and latency for every request.
func (m *RequestMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requests.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(path).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
