package http

import (
	"errors"
	"strconv"
	"time"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP and lifecycle collectors of the API.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
}

// NewMetrics registers the collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parceltrack_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parceltrack_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parceltrack_parcel_transitions_total",
				Help: "Parcel status changes by resulting status.",
			},
			[]string{"status"},
		),
	}
}

// ObserveTransition counts a parcel entering status.
func (m *Metrics) ObserveTransition(status parcel.Status) {
	m.transitions.WithLabelValues(status.String()).Inc()
}

// Middleware records every request under its route pattern, so path
// parameters do not create new label values.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				status = statusFromError(err)
			}
			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}

			m.requestsTotal.WithLabelValues(ctx.Request().Method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(ctx.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// statusFromError predicts the code the error handler will write.
func statusFromError(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return statusOf(err)
}
