// Package catalogue owns the stops, buses and road distances of a transit
// network and derives per-bus statistics from them.
//
// A Catalogue is populated during a single-threaded load phase and is safe for
// concurrent readers once loading has finished.
package catalogue

import (
	"fmt"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
)

type stopPair struct {
	from StopID
	to   StopID
}

type Catalogue struct {
	stops       []*Stop
	buses       []*Bus
	stopsByName map[string]StopID
	busesByName map[string]BusID
	distances   map[stopPair]int
	busesByStop map[StopID]map[string]struct{}
	spatial     rtree.RTreeG[StopID]
}

func New() *Catalogue {
	return &Catalogue{
		stopsByName: make(map[string]StopID),
		busesByName: make(map[string]BusID),
		distances:   make(map[stopPair]int),
		busesByStop: make(map[StopID]map[string]struct{}),
	}
}

// AddStop inserts a stop and returns its identity. Adding a name that already
// exists overwrites the coordinates in the existing slot.
func (c *Catalogue) AddStop(name string, coords geo.Coordinates) StopID {
	if id, ok := c.stopsByName[name]; ok {
		stop := c.stops[id]
		c.spatial.Delete(point(stop.Coordinates), point(stop.Coordinates), id)
		stop.Coordinates = coords
		c.spatial.Insert(point(coords), point(coords), id)
		return id
	}

	id := StopID(len(c.stops))
	c.stops = append(c.stops, &Stop{ID: id, Name: name, Coordinates: coords})
	c.stopsByName[name] = id
	c.spatial.Insert(point(coords), point(coords), id)
	return id
}

// AddBus resolves every stop name and stores the bus. Nothing is stored when
// an error is returned.
func (c *Catalogue) AddBus(name string, stopNames []string, isCircular bool) (BusID, error) {
	if len(stopNames) == 0 {
		return 0, fmt.Errorf("bus %q: %w", name, ErrEmptyRoute)
	}
	if _, exists := c.busesByName[name]; exists {
		return 0, fmt.Errorf("bus %q: %w", name, ErrDuplicateBus)
	}

	stopIDs := make([]StopID, 0, len(stopNames))
	for _, stopName := range stopNames {
		id, ok := c.stopsByName[stopName]
		if !ok {
			return 0, &UnknownStopError{Name: stopName}
		}
		stopIDs = append(stopIDs, id)
	}

	id := BusID(len(c.buses))
	c.buses = append(c.buses, &Bus{ID: id, Name: name, Stops: stopIDs, IsCircular: isCircular})
	c.busesByName[name] = id

	for _, stopID := range stopIDs {
		served, ok := c.busesByStop[stopID]
		if !ok {
			served = make(map[string]struct{})
			c.busesByStop[stopID] = served
		}
		served[name] = struct{}{}
	}
	return id, nil
}

func (c *Catalogue) FindStop(name string) (*Stop, bool) {
	id, ok := c.stopsByName[name]
	if !ok {
		return nil, false
	}
	return c.stops[id], true
}

func (c *Catalogue) FindBus(name string) (*Bus, bool) {
	id, ok := c.busesByName[name]
	if !ok {
		return nil, false
	}
	return c.buses[id], true
}

// Stop returns the stop stored under id. It panics when id was not issued by
// this catalogue.
func (c *Catalogue) Stop(id StopID) *Stop {
	return c.stops[id]
}

// Bus returns the bus stored under id. It panics when id was not issued by
// this catalogue.
func (c *Catalogue) Bus(id BusID) *Bus {
	return c.buses[id]
}

// SetDistance records the directed road distance from one stop to another.
func (c *Catalogue) SetDistance(from, to string, meters int) error {
	if meters < 0 {
		return fmt.Errorf("distance %q -> %q: %w", from, to, ErrNegativeDistance)
	}
	fromID, ok := c.stopsByName[from]
	if !ok {
		return &UnknownStopError{Name: from}
	}
	toID, ok := c.stopsByName[to]
	if !ok {
		return &UnknownStopError{Name: to}
	}
	c.distances[stopPair{from: fromID, to: toID}] = meters
	return nil
}

// GetDistance returns the road distance between two named stops, falling
// back to the reverse direction and then to 0.
func (c *Catalogue) GetDistance(from, to string) int {
	fromID, ok := c.stopsByName[from]
	if !ok {
		return 0
	}
	toID, ok := c.stopsByName[to]
	if !ok {
		return 0
	}
	return c.Distance(fromID, toID)
}

// Distance is GetDistance keyed by stop identity.
func (c *Catalogue) Distance(from, to StopID) int {
	if d, ok := c.distances[stopPair{from: from, to: to}]; ok {
		return d
	}
	if d, ok := c.distances[stopPair{from: to, to: from}]; ok {
		return d
	}
	return 0
}

// RealizedPath returns the stops a bus visits on the ground: the declared
// sequence for circular buses, forward then backward for linear ones.
func (c *Catalogue) RealizedPath(bus *Bus) []StopID {
	if bus.IsCircular || len(bus.Stops) == 1 {
		path := make([]StopID, len(bus.Stops))
		copy(path, bus.Stops)
		return path
	}

	path := make([]StopID, 0, 2*len(bus.Stops)-1)
	path = append(path, bus.Stops...)
	for i := len(bus.Stops) - 2; i >= 0; i-- {
		path = append(path, bus.Stops[i])
	}
	return path
}

// GetBusInfo computes the statistics of a bus. The zero BusInfo is returned
// for unknown buses.
func (c *Catalogue) GetBusInfo(name string) BusInfo {
	bus, ok := c.FindBus(name)
	if !ok {
		return BusInfo{}
	}

	path := c.RealizedPath(bus)

	unique := make(map[StopID]struct{}, len(bus.Stops))
	for _, id := range bus.Stops {
		unique[id] = struct{}{}
	}

	var routeLength int
	var geoLength float64
	for i := 1; i < len(path); i++ {
		routeLength += c.Distance(path[i-1], path[i])
		geoLength += geo.ComputeDistance(c.stops[path[i-1]].Coordinates, c.stops[path[i]].Coordinates)
	}

	curvature := 1.0
	if geoLength > 0 {
		curvature = float64(routeLength) / geoLength
	}

	return BusInfo{
		Name:         bus.Name,
		StopsOnRoute: len(path),
		UniqueStops:  len(unique),
		RouteLength:  routeLength,
		GeoLength:    geoLength,
		Curvature:    curvature,
	}
}

// GetBusesByStop returns the names of the buses serving a stop in
// lexicographic order. The result is empty, never nil, for unknown or
// unserved stops.
func (c *Catalogue) GetBusesByStop(name string) []string {
	id, ok := c.stopsByName[name]
	if !ok {
		return []string{}
	}

	served := c.busesByStop[id]
	names := make([]string, 0, len(served))
	for busName := range served {
		names = append(names, busName)
	}
	sort.Strings(names)
	return names
}

// GetAllStops returns the stops in insertion order.
func (c *Catalogue) GetAllStops() []*Stop {
	stops := make([]*Stop, len(c.stops))
	copy(stops, c.stops)
	return stops
}

// GetAllBuses returns the buses in insertion order.
func (c *Catalogue) GetAllBuses() []*Bus {
	buses := make([]*Bus, len(c.buses))
	copy(buses, c.buses)
	return buses
}

// Bounds returns the region covered by all stops. The second return value is
// false for an empty catalogue.
func (c *Catalogue) Bounds() (geo.CoordinateBounds, bool) {
	points := make([]geo.Coordinates, 0, len(c.stops))
	for _, stop := range c.stops {
		points = append(points, stop.Coordinates)
	}
	return geo.BoundsOf(points)
}

func (c *Catalogue) Stats() Stats {
	return Stats{
		Stops:     len(c.stops),
		Buses:     len(c.buses),
		Distances: len(c.distances),
	}
}
