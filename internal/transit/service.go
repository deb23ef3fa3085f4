// Package transit is the read-only query surface over a loaded catalogue and
// its transport router. It is what request processors and HTTP handlers call.
package transit

import (
	"context"
	"log/slog"
	"time"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/metrics"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
)

// BusStat is the public view of a bus's statistics.
type BusStat struct {
	Name            string  `json:"name"`
	StopCount       int     `json:"stopCount"`
	UniqueStopCount int     `json:"uniqueStopCount"`
	RouteLength     int     `json:"routeLength"`
	GeoLength       float64 `json:"geoLength"`
	Curvature       float64 `json:"curvature"`
	IsRoundTrip     bool    `json:"isRoundTrip"`
}

// Shape is a bus's realized path as an encoded polyline.
type Shape struct {
	BusName string `json:"busName"`
	Points  string `json:"points"`
	Length  int    `json:"length"`
}

type Stats struct {
	catalogue.Stats
	GraphVertices int  `json:"graphVertices"`
	GraphEdges    int  `json:"graphEdges"`
	GraphFrozen   bool `json:"graphFrozen"`
}

type Service struct {
	catalogue *catalogue.Catalogue
	router    *router.TransportRouter
	metrics   *metrics.Metrics
	logger    *slog.Logger

	// bounds covers every stop; hasBounds is false for an empty network.
	bounds    geo.CoordinateBounds
	hasBounds bool
}

// NewService wires the query surface. m may be nil.
func NewService(cat *catalogue.Catalogue, tr *router.TransportRouter, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		catalogue: cat,
		router:    tr,
		metrics:   m,
		logger:    logger.With(slog.String("component", "transit_service")),
	}
	s.bounds, s.hasBounds = cat.Bounds()
	if m != nil {
		stats := s.Stats()
		m.SetCatalogueSize(stats.Stops, stats.Buses, stats.Distances, stats.GraphVertices, stats.GraphEdges)
	}
	return s
}

func (s *Service) Catalogue() *catalogue.Catalogue {
	return s.catalogue
}

func (s *Service) Router() *router.TransportRouter {
	return s.router
}

// GetBusStat reports the statistics of a bus; ok is false when it is unknown.
func (s *Service) GetBusStat(name string) (BusStat, bool) {
	info := s.catalogue.GetBusInfo(name)
	if !info.Found() {
		return BusStat{}, false
	}
	bus, _ := s.catalogue.FindBus(name)
	return BusStat{
		Name:            info.Name,
		StopCount:       info.StopsOnRoute,
		UniqueStopCount: info.UniqueStops,
		RouteLength:     info.RouteLength,
		GeoLength:       info.GeoLength,
		Curvature:       info.Curvature,
		IsRoundTrip:     bus.IsCircular,
	}, true
}

// GetStopInfo returns the sorted names of the buses through a stop. ok is
// false when the stop is unknown; a known stop with no buses yields an empty
// slice.
func (s *Service) GetStopInfo(name string) ([]string, bool) {
	if _, ok := s.catalogue.FindStop(name); !ok {
		return nil, false
	}
	return s.catalogue.GetBusesByStop(name), true
}

// BuildRoute finds the fastest itinerary and records the query outcome.
func (s *Service) BuildRoute(ctx context.Context, from, to string) (router.Route, bool, error) {
	start := time.Now()
	route, ok, err := s.router.BuildRouteContext(ctx, from, to)

	result := metrics.RouteFound
	switch {
	case err != nil:
		result = metrics.RouteError
		logging.LogError(s.logger, "Route query aborted", err,
			slog.String("from", from),
			slog.String("to", to))
	case !ok:
		result = metrics.RouteNotFound
	}
	if s.metrics != nil {
		s.metrics.ObserveRouteQuery(result, time.Since(start))
	}

	return route, ok, err
}

// StopsNear lists the stops within radius meters of center. Searches whose
// box misses the network entirely skip the spatial index.
func (s *Service) StopsNear(center geo.Coordinates, radius float64) []catalogue.NearbyStop {
	if !s.hasBounds || radius <= 0 {
		return []catalogue.NearbyStop{}
	}
	for _, box := range geo.CalculateBounds(center, radius).SplitAtAntimeridian() {
		if !geo.IsOutOfBounds(box, s.bounds) {
			return s.catalogue.StopsNear(center, radius)
		}
	}
	return []catalogue.NearbyStop{}
}

// BusShape encodes the realized path of a bus; ok is false when it is unknown.
func (s *Service) BusShape(name string) (Shape, bool) {
	points, length, ok := s.catalogue.BusPolyline(name)
	if !ok {
		return Shape{}, false
	}
	return Shape{BusName: name, Points: points, Length: length}, true
}

func (s *Service) Stats() Stats {
	g := s.router.Graph()
	return Stats{
		Stats:         s.catalogue.Stats(),
		GraphVertices: g.VertexCount(),
		GraphEdges:    g.EdgeCount(),
		GraphFrozen:   g.Frozen(),
	}
}

// Bounds is the region covered by all stops; ok is false for an empty network.
func (s *Service) Bounds() (geo.CoordinateBounds, bool) {
	return s.bounds, s.hasBounds
}
