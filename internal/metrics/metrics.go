// Package metrics provides Prometheus metrics for the transport catalogue service.
package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Route query results used as the "result" label.
const (
	RouteFound    = "found"
	RouteNotFound = "not_found"
	RouteError    = "error"
)

// CacheStatsSource reports cumulative cache hits and misses.
type CacheStatsSource interface {
	CacheStats() (hits, misses uint64)
}

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Routing metrics
	RouteQueriesTotal  *prometheus.CounterVec
	RouteQueryDuration prometheus.Histogram
	RouteCacheHits     prometheus.Gauge
	RouteCacheMisses   prometheus.Gauge

	// Catalogue metrics
	CatalogueStops     prometheus.Gauge
	CatalogueBuses     prometheus.Gauge
	CatalogueDistances prometheus.Gauge
	GraphVertices      prometheus.Gauge
	GraphEdges         prometheus.Gauge

	// logger for error reporting
	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool

	// cancel stops the cache stats collector goroutine
	cancel context.CancelFunc

	// wg tracks the cache stats collector goroutine for graceful shutdown
	wg sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transport_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	routeQueriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_route_queries_total",
			Help: "Total number of itinerary queries by result",
		},
		[]string{"result"},
	)

	routeQueryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "transport_route_query_duration_seconds",
		Help:    "Itinerary query latency distribution",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
	})

	routeCacheHits := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_route_cache_hits",
		Help: "Itinerary cache hits since start",
	})

	routeCacheMisses := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_route_cache_misses",
		Help: "Itinerary cache misses since start",
	})

	catalogueStops := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_catalogue_stops",
		Help: "Number of stops in the catalogue",
	})

	catalogueBuses := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_catalogue_buses",
		Help: "Number of buses in the catalogue",
	})

	catalogueDistances := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_catalogue_road_distances",
		Help: "Number of directed road distances in the catalogue",
	})

	graphVertices := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_graph_vertices",
		Help: "Number of vertices in the routing graph",
	})

	graphEdges := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_graph_edges",
		Help: "Number of edges in the routing graph",
	})

	// Register all metrics with the custom registry
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		routeQueriesTotal,
		routeQueryDuration,
		routeCacheHits,
		routeCacheMisses,
		catalogueStops,
		catalogueBuses,
		catalogueDistances,
		graphVertices,
		graphEdges,
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		RouteQueriesTotal:   routeQueriesTotal,
		RouteQueryDuration:  routeQueryDuration,
		RouteCacheHits:      routeCacheHits,
		RouteCacheMisses:    routeCacheMisses,
		CatalogueStops:      catalogueStops,
		CatalogueBuses:      catalogueBuses,
		CatalogueDistances:  catalogueDistances,
		GraphVertices:       graphVertices,
		GraphEdges:          graphEdges,
		logger:              logger,
	}
}

// ObserveRouteQuery records the outcome and latency of one itinerary query.
func (m *Metrics) ObserveRouteQuery(result string, duration time.Duration) {
	m.RouteQueriesTotal.WithLabelValues(result).Inc()
	m.RouteQueryDuration.Observe(duration.Seconds())
}

// SetCatalogueSize publishes the size of the loaded network.
func (m *Metrics) SetCatalogueSize(stops, buses, distances, vertices, edges int) {
	m.CatalogueStops.Set(float64(stops))
	m.CatalogueBuses.Set(float64(buses))
	m.CatalogueDistances.Set(float64(distances))
	m.GraphVertices.Set(float64(vertices))
	m.GraphEdges.Set(float64(edges))
}

// StartCacheStatsCollector starts a goroutine that periodically copies the
// itinerary cache counters into the corresponding gauges.
// This method is idempotent - calling it multiple times has no effect after the first call.
// Call Shutdown() to stop the collector.
func (m *Metrics) StartCacheStatsCollector(source CacheStatsSource, interval time.Duration) {
	if source == nil {
		return
	}

	// Prevent spawning multiple collectors
	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Add to WaitGroup BEFORE exposing cancel to avoid race with Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in cache stats collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hits, misses := source.CacheStats()
				m.RouteCacheHits.Set(float64(hits))
				m.RouteCacheMisses.Set(float64(misses))

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the cache stats collector goroutine and waits for it to exit.
// This method is safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
