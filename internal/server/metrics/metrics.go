// Package metrics holds the Prometheus collectors of the backup server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several servers (tests) can live in one
// process.
type Metrics struct {
	registry *prometheus.Registry

	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	BackupOperations    *prometheus.CounterVec
	StorageDuration     *prometheus.HistogramVec
	BackupProducts      prometheus.Histogram
}

// New registers every collector under the given prefix.
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,

		HttpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HttpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		BackupOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_backup_operations_total",
				Help: "Backup and restore operations by outcome",
			},
			[]string{"operation", "result"},
		),

		StorageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_storage_operation_duration_seconds",
				Help:    "Duration of backup storage operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		BackupProducts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_backup_products",
				Help:    "Number of products per stored backup",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	reg.MustRegister(m.HttpRequestsTotal, m.HttpRequestDuration, m.BackupOperations, m.StorageDuration, m.BackupProducts)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TrackStorage returns a function that records the duration of a storage
// operation.
func (m *Metrics) TrackStorage(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		m.StorageDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOperation counts one backup or restore with its outcome.
func (m *Metrics) RecordOperation(operation, result string) {
	m.BackupOperations.WithLabelValues(operation, result).Inc()
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		return nil
	}
}
