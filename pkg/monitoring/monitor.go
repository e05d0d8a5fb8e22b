package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// XPAwarded 按活动类型统计发放的经验值
	XPAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_xp_awarded_total",
			Help: "Total XP awarded, by activity kind",
		},
		[]string{"kind"},
	)

	// ReviewsRated 按评分质量统计复习次数
	ReviewsRated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_reviews_rated_total",
			Help: "Total review card ratings, by quality",
		},
		[]string{"quality"},
	)

	// DueReviews 当前到期待复习卡片数，后台任务定期刷新
	DueReviews = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tutor_due_reviews",
			Help: "Number of review cards currently due",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(XPAwarded)
	prometheus.MustRegister(ReviewsRated)
	prometheus.MustRegister(DueReviews)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
