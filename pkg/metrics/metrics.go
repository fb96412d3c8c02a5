package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pharmacy_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_logins_total",
		Help: "Login attempts by account kind and result",
	}, []string{"kind", "result"})

	orderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_order_status_changes_total",
		Help: "Order status changes by source and target status",
	}, []string{"from", "to"})

	catalogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_catalog_writes_total",
		Help: "Medicine catalog mutations by operation",
	}, []string{"op"})

	eventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_event_publish_failures_total",
		Help: "Domain events that could not be delivered",
	}, []string{"topic"})
)

func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordLogin(kind string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	logins.WithLabelValues(kind, result).Inc()
}

func RecordOrderTransition(from, to string) {
	orderTransitions.WithLabelValues(from, to).Inc()
}

func RecordCatalogWrite(op string) {
	catalogWrites.WithLabelValues(op).Inc()
}

func RecordPublishFailure(topic string) {
	eventPublishFailures.WithLabelValues(topic).Inc()
}

func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			ObserveHTTPRequest(c.Request().Method, path, status, time.Since(start))
			return err
		}
	}
}

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
