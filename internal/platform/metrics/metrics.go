// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package metrics exposes Prometheus instrumentation for the Stockroom API.

All collectors are registered on a private registry so that tests can create
isolated instances and the exposition endpoint never leaks default-registry
noise from third-party libraries.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the Stockroom API server.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	AuthSuccessesTotal *prometheus.CounterVec
	AuthFailuresTotal  *prometheus.CounterVec

	// Inventory domain metrics
	CSVImportsTotal    *prometheus.CounterVec
	CSVImportedRows    prometheus.Counter
	LowStockItems      prometheus.Gauge

	// Server lifecycle
	ServerStartTime prometheus.Gauge
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockroom_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AuthSuccessesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_auth_successes_total",
			Help: "Total number of successful authentications.",
		}, []string{"method"}),

		AuthFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_auth_failures_total",
			Help: "Total number of failed authentications.",
		}, []string{"method"}),

		CSVImportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_csv_imports_total",
			Help: "Total number of CSV inventory import attempts.",
		}, []string{"status"}),

		CSVImportedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_csv_imported_rows_total",
			Help: "Total number of inventory rows created via CSV import.",
		}),

		LowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockroom_low_stock_items",
			Help: "Number of items at or below their reorder level, as of the last report query.",
		}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockroom_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthSuccessesTotal,
		m.AuthFailuresTotal,
		m.CSVImportsTotal,
		m.CSVImportedRows,
		m.LowStockItems,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	// Go runtime and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncAuthSuccess increments the auth success counter for a sign-in method.
func (m *Metrics) IncAuthSuccess(method string) {
	m.AuthSuccessesTotal.WithLabelValues(method).Inc()
}

// IncAuthFailure increments the auth failure counter for a sign-in method.
func (m *Metrics) IncAuthFailure(method string) {
	m.AuthFailuresTotal.WithLabelValues(method).Inc()
}

// ObserveCSVImport records the outcome of a CSV import and its created rows.
func (m *Metrics) ObserveCSVImport(status string, rows int) {
	m.CSVImportsTotal.WithLabelValues(status).Inc()
	if rows > 0 {
		m.CSVImportedRows.Add(float64(rows))
	}
}

// # HTTP Instrumentation

type instrumentedWriter struct {
	http.ResponseWriter
	status int
}

func (w *instrumentedWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with count and duration collectors.
//
// The route label uses the chi route pattern (e.g. "/api/v1/inventory/{id}")
// rather than the raw path, keeping label cardinality bounded.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrapped := &instrumentedWriter{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request)

			route := "unmatched"
			if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			m.HTTPRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(wrapped.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
		})
	}
}
