// Package metrics exposes Prometheus collectors for the meal API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_searches_total",
			Help: "Total number of meal searches, labeled by outcome.",
		},
		[]string{"status"},
	)

	sourceResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_source_results_total",
			Help: "Total number of meals fetched, labeled by source.",
		},
		[]string{"source"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method, route and code.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route", "code"},
	)
)

// ObserveSearch increments the search counter for the given outcome.
func ObserveSearch(status string) {
	searchesTotal.WithLabelValues(status).Inc()
}

// ObserveSourceResults records how many meals a source returned.
func ObserveSourceResults(source string, count int) {
	sourceResultsTotal.WithLabelValues(source).Add(float64(count))
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware records request latencies per route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestDurationSeconds.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
