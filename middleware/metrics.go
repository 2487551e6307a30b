package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// In-flight HTTP requests
	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// QuoteImagesProcessed counts per-image outcomes inside one request:
	// uploaded, skipped_decode, skipped_upload.
	QuoteImagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_images_processed_total",
			Help: "Quote request images by processing outcome",
		},
		[]string{"outcome"},
	)

	// QuoteEmailsSent counts delivery outcomes per channel. Delivery
	// failures never change the HTTP response, so this is where operators
	// alert on them.
	QuoteEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_emails_sent_total",
			Help: "Quote notification emails by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
)

// Metrics records basic Prometheus metrics for every request. Labels use
// the matched route template to keep cardinality low.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
