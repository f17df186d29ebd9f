package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	serverErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_responses_5xx_total",
			Help: "Total responses with a 5xx status",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(serverErrors)
}

// Metrics counts every request after it is handled. Unmatched routes are
// labeled with the raw 404 path collapsed to "unmatched" to keep cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		if status >= 500 {
			serverErrors.Inc()
		}
	}
}
