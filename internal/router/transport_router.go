// Package router turns a populated catalogue into a time-weighted graph and
// answers fastest-itinerary queries over it.
//
// Each stop k owns two vertices: "arrived" (2k) and "ready to ride" (2k+1).
// A wait edge connects them; ride edges connect the ready vertex of a
// boarding stop to the arrived vertex of every later stop on a bus.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluele/gcache"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/graph"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
)

// rideEdge is what the translator needs to name a ride edge.
type rideEdge struct {
	bus       catalogue.BusID
	spanCount int
}

type TransportRouter struct {
	catalogue *catalogue.Catalogue
	settings  Settings
	graph     *graph.DirectedWeightedGraph[float64]
	router    *graph.Router[float64]
	rides     map[graph.EdgeID]rideEdge
	cache     gcache.Cache
	cacheSize int
	logger    *slog.Logger
}

type Option func(*TransportRouter)

// WithCache keeps up to size translated itineraries in an LRU cache. A size
// of zero or less disables caching.
func WithCache(size int) Option {
	return func(tr *TransportRouter) {
		tr.cacheSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(tr *TransportRouter) {
		tr.logger = logger
	}
}

// New validates settings and builds the routing graph from cat. The catalogue
// must be fully loaded; later changes to it are not reflected.
func New(cat *catalogue.Catalogue, settings Settings, opts ...Option) (*TransportRouter, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	tr := &TransportRouter{
		catalogue: cat,
		settings:  settings,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(tr)
	}
	tr.logger = tr.logger.With(slog.String("component", "transport_router"))

	start := time.Now()
	g, rides, err := buildGraph(cat, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to build transport graph: %w", err)
	}
	tr.graph = g
	tr.rides = rides
	tr.router = graph.NewRouter(g)

	if tr.cacheSize > 0 {
		tr.cache = gcache.New(tr.cacheSize).LRU().Build()
	}

	logging.LogOperation(tr.logger, "transport_graph_built",
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()),
		slog.Int("ride_edges", len(rides)),
		slog.Duration("duration", time.Since(start)))

	return tr, nil
}

func arrivedVertex(id catalogue.StopID) graph.VertexID {
	return graph.VertexID(2 * int(id))
}

func readyVertex(id catalogue.StopID) graph.VertexID {
	return graph.VertexID(2*int(id) + 1)
}

func stopOfVertex(v graph.VertexID) catalogue.StopID {
	return catalogue.StopID(int(v) / 2)
}

func isArrivedVertex(v graph.VertexID) bool {
	return v%2 == 0
}

func buildGraph(cat *catalogue.Catalogue, settings Settings) (*graph.DirectedWeightedGraph[float64], map[graph.EdgeID]rideEdge, error) {
	stops := cat.GetAllStops()
	g := graph.NewDirectedWeightedGraph[float64](2 * len(stops))
	rides := make(map[graph.EdgeID]rideEdge)

	wait := float64(settings.BusWaitTime)
	for _, stop := range stops {
		if _, err := g.AddEdge(graph.Edge[float64]{
			From:   arrivedVertex(stop.ID),
			To:     readyVertex(stop.ID),
			Weight: wait,
		}); err != nil {
			return nil, nil, err
		}
	}

	speed := settings.metersPerMinute()
	for _, bus := range cat.GetAllBuses() {
		if err := addRideEdges(g, rides, cat, bus.ID, bus.Stops, speed); err != nil {
			return nil, nil, err
		}
		if bus.IsCircular {
			continue
		}
		reversed := make([]catalogue.StopID, len(bus.Stops))
		for i, id := range bus.Stops {
			reversed[len(bus.Stops)-1-i] = id
		}
		if err := addRideEdges(g, rides, cat, bus.ID, reversed, speed); err != nil {
			return nil, nil, err
		}
	}

	return g, rides, nil
}

// addRideEdges adds one edge per ordered pair (i, j), i < j, of sequence.
// Spans that start and end at the same stop are skipped.
func addRideEdges(
	g *graph.DirectedWeightedGraph[float64],
	rides map[graph.EdgeID]rideEdge,
	cat *catalogue.Catalogue,
	bus catalogue.BusID,
	sequence []catalogue.StopID,
	speed float64,
) error {
	for i := 0; i < len(sequence)-1; i++ {
		meters := 0
		for j := i + 1; j < len(sequence); j++ {
			meters += cat.Distance(sequence[j-1], sequence[j])
			if sequence[i] == sequence[j] {
				continue
			}
			id, err := g.AddEdge(graph.Edge[float64]{
				From:   readyVertex(sequence[i]),
				To:     arrivedVertex(sequence[j]),
				Weight: float64(meters) / speed,
			})
			if err != nil {
				return err
			}
			rides[id] = rideEdge{bus: bus, spanCount: j - i}
		}
	}
	return nil
}

func (tr *TransportRouter) Settings() Settings {
	return tr.settings
}

// Graph exposes the frozen routing graph.
func (tr *TransportRouter) Graph() *graph.DirectedWeightedGraph[float64] {
	return tr.graph
}

// BuildRoute returns the fastest itinerary between two named stops. ok is
// false when either stop is unknown or no path exists.
//
// Routing from a stop to itself yields a single mandatory wait.
func (tr *TransportRouter) BuildRoute(from, to string) (Route, bool) {
	route, ok, _ := tr.BuildRouteContext(context.Background(), from, to)
	return route, ok
}

// BuildRouteContext is BuildRoute with cancellation. The only error it returns
// is ctx.Err().
func (tr *TransportRouter) BuildRouteContext(ctx context.Context, from, to string) (Route, bool, error) {
	fromStop, ok := tr.catalogue.FindStop(from)
	if !ok {
		return Route{}, false, nil
	}
	toStop, ok := tr.catalogue.FindStop(to)
	if !ok {
		return Route{}, false, nil
	}

	if fromStop.ID == toStop.ID {
		wait := float64(tr.settings.BusWaitTime)
		return Route{
			TotalTime: wait,
			Items:     []Item{{Type: ItemWait, StopName: fromStop.Name, Time: wait}},
		}, true, nil
	}

	key := cacheKey(fromStop.ID, toStop.ID)
	if cached, found := tr.cached(key); found {
		return cached, true, nil
	}

	info, ok, err := tr.router.BuildRouteContext(ctx, arrivedVertex(fromStop.ID), arrivedVertex(toStop.ID))
	if err != nil {
		return Route{}, false, err
	}
	if !ok {
		return Route{}, false, nil
	}

	route := tr.translate(info)
	tr.store(key, route)
	return route, true, nil
}

func (tr *TransportRouter) translate(info graph.RouteInfo[float64]) Route {
	items := make([]Item, 0, len(info.Edges))
	for _, id := range info.Edges {
		edge := tr.graph.Edge(id)
		if isArrivedVertex(edge.From) {
			items = append(items, Item{
				Type:     ItemWait,
				StopName: tr.catalogue.Stop(stopOfVertex(edge.From)).Name,
				Time:     edge.Weight,
			})
			continue
		}

		ride := tr.rides[id]
		items = append(items, Item{
			Type:      ItemBus,
			BusName:   tr.catalogue.Bus(ride.bus).Name,
			Time:      edge.Weight,
			SpanCount: ride.spanCount,
		})
	}
	return Route{TotalTime: info.Weight, Items: items}
}

type routeKey struct {
	from catalogue.StopID
	to   catalogue.StopID
}

func cacheKey(from, to catalogue.StopID) routeKey {
	return routeKey{from: from, to: to}
}

func (tr *TransportRouter) cached(key routeKey) (Route, bool) {
	if tr.cache == nil {
		return Route{}, false
	}
	value, err := tr.cache.Get(key)
	if err != nil {
		if !errors.Is(err, gcache.KeyNotFoundError) {
			logging.LogError(tr.logger, "Failed to read itinerary cache", err)
		}
		return Route{}, false
	}
	route, ok := value.(Route)
	if !ok {
		return Route{}, false
	}
	return route.clone(), true
}

func (tr *TransportRouter) store(key routeKey, route Route) {
	if tr.cache == nil {
		return
	}
	if err := tr.cache.Set(key, route.clone()); err != nil {
		logging.LogError(tr.logger, "Failed to write itinerary cache", err)
	}
}

// CacheStats reports itinerary cache hits and misses. Both are zero when
// caching is disabled.
func (tr *TransportRouter) CacheStats() (hits, misses uint64) {
	if tr.cache == nil {
		return 0, 0
	}
	return tr.cache.HitCount(), tr.cache.MissCount()
}
