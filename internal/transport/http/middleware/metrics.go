package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	resp "library-admin/internal/transport/http/response"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by engine, route and response code.",
	}, []string{"engine", "route", "method", "code"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "library",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"engine", "route", "method"})
)

func init() { prometheus.MustRegister(httpRequests, httpLatency) }

// Metrics engine 区分用户端(api)与管理端(admin)
func Metrics(engine string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := routeOf(c)
		httpRequests.WithLabelValues(engine, route, c.Request.Method, strconv.Itoa(resp.CodeOf(c))).Inc()
		httpLatency.WithLabelValues(engine, route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
