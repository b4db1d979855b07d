package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordering_console_http_requests_total",
			Help: "Total number of HTTP requests served by the console",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ordering_console_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the console",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	consoleOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordering_console_operations_total",
			Help: "Total number of console operations against the backend",
		},
		[]string{"resource", "operation", "status"},
	)
)

// PrometheusMiddleware records request totals and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordOperation counts one proxied backend operation per resource.
func RecordOperation(resource, operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	consoleOperations.WithLabelValues(resource, operation, status).Inc()
}
