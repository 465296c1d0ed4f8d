package monitor

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration records HTTP request latency
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: []float64{0.1, 0.3, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"method", "path"},
	)
)

// BusinessMetrics holds counters for the coin economy
type BusinessMetrics struct {
	UserRegisteredTotal     prometheus.Counter
	ResourceUploadedTotal   prometheus.Counter
	ResourceDownloadedTotal prometheus.Counter
	CoinsMovedTotal         *prometheus.CounterVec
	AchievementAwardedTotal *prometheus.CounterVec
}

// Business is nil until Init runs. Callers must check before use.
var Business *BusinessMetrics

var initOnce sync.Once

// Init registers all metrics. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		initBusinessMetrics()
	})
}

func initBusinessMetrics() {
	Business = &BusinessMetrics{
		UserRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "breez_user_registered_total",
			Help: "The total number of registered users",
		}),
		ResourceUploadedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "breez_resource_uploaded_total",
			Help: "The total number of uploaded resources",
		}),
		ResourceDownloadedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "breez_resource_downloaded_total",
			Help: "The total number of settled downloads",
		}),
		CoinsMovedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "breez_coins_moved_total",
			Help: "The total amount of coins moved through the ledger",
		}, []string{"kind"}),
		AchievementAwardedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "breez_achievement_awarded_total",
			Help: "Total number of achievements awarded",
		}, []string{"code"}),
	}
}

// PrometheusMiddleware returns a gin middleware that records request metrics
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		// Unmatched routes have no template path, skip them
		if path != "" {
			HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
			HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
		}
	}
}
