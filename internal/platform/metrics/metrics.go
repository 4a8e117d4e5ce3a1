// Package metrics holds the process-wide Prometheus collectors and the helpers that feed them
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Warehouse metrics
	WarehouseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adperf_warehouse_query_duration_seconds",
			Help:    "Duration of warehouse queries in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	WarehouseQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adperf_warehouse_query_errors_total",
			Help: "Total number of failed warehouse queries",
		},
		[]string{"operation"},
	)

	// Result cache metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adperf_result_cache_lookups_total",
			Help: "Result cache lookups by table and outcome",
		},
		[]string{"table", "result"}, // result: hit, miss
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "adperf_result_cache_entries",
			Help: "Entries currently held per result cache table",
		},
		[]string{"table"},
	)

	// Settings store metrics
	SettingsOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adperf_settings_operations_total",
			Help: "Settings store reads and writes by outcome",
		},
		[]string{"operation", "result"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adperf_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adperf_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)
)

// RecordWarehouseQuery records one warehouse round trip
func RecordWarehouseQuery(operation string, d time.Duration, err error) {
	WarehouseQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		WarehouseQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordCacheLookup counts a hit or miss on a cache table
func RecordCacheLookup(table string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(table, result).Inc()
}

// SetCacheEntries publishes the current size of a cache table
func SetCacheEntries(table string, n int) {
	CacheEntries.WithLabelValues(table).Set(float64(n))
}

// RecordSettings counts a settings read or write
func RecordSettings(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SettingsOperations.WithLabelValues(operation, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Middleware records every request against its chi route pattern
// unmatched requests are grouped under "unmatched" to keep label cardinality bounded
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}

// Handler serves the default registry in the Prometheus exposition format
func Handler() http.Handler { return promhttp.Handler() }
