package middleware

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
			Name: "matchday_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchday_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	reservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchday_reservations_total",
			Help: "Reservation attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Metrics middleware считает запросы и время ответа по роутам
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(
			c.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}

// RecordReservation counts a reservation attempt outcome: created, replayed,
// seat_not_found, seat_unavailable, invalid or error.
func RecordReservation(outcome string) {
	reservationsTotal.WithLabelValues(outcome).Inc()
}
