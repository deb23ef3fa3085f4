package gtfs

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/OneBusAway/go-gtfs"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
)

// ImportStats counts what an import added to the catalogue.
type ImportStats struct {
	Stops         int
	Buses         int
	Distances     int
	SkippedRoutes int
}

// ImportStatic adds one bus per GTFS route to cat. A route is represented by
// its trip with the most stop times and is circular when that trip ends where
// it started. Road distances are the great-circle distances between
// consecutive stops, rounded up to whole metres.
//
// Stops without coordinates and routes with fewer than two stops are skipped.
func ImportStatic(cat *catalogue.Catalogue, static *gtfs.Static, logger *slog.Logger) (ImportStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "gtfs_importer"))

	var stats ImportStats
	trips := representativeTrips(static)
	names := stopNames(trips)

	added := make(map[string]struct{})
	busNames := routeNames(static.Routes)

	for _, route := range orderedRoutes(trips) {
		stops := tripStops(trips[route])
		if len(stops) < 2 {
			stats.SkippedRoutes++
			logging.LogOperation(logger, "route_skipped",
				slog.String("route_id", route.Id),
				slog.Int("stops", len(stops)))
			continue
		}

		sequence := make([]string, 0, len(stops))
		for _, stop := range stops {
			name := names[stop.Id]
			if _, ok := added[name]; !ok {
				cat.AddStop(name, geo.Coordinates{Lat: *stop.Latitude, Lng: *stop.Longitude})
				added[name] = struct{}{}
				stats.Stops++
			}
			sequence = append(sequence, name)
		}

		for i := 1; i < len(stops); i++ {
			meters := roadDistance(stops[i-1], stops[i])
			if err := cat.SetDistance(sequence[i-1], sequence[i], meters); err != nil {
				return stats, fmt.Errorf("route %q: %w", route.Id, err)
			}
			stats.Distances++
		}

		busName, ok := busNames[route.Id]
		if !ok {
			busName = route.Id
		}
		isCircular := stops[0].Id == stops[len(stops)-1].Id
		if _, err := cat.AddBus(busName, sequence, isCircular); err != nil {
			return stats, fmt.Errorf("route %q: %w", route.Id, err)
		}
		stats.Buses++
	}

	logging.LogOperation(logger, "gtfs_imported",
		slog.Int("stops", stats.Stops),
		slog.Int("buses", stats.Buses),
		slog.Int("distances", stats.Distances),
		slog.Int("skipped_routes", stats.SkippedRoutes))

	return stats, nil
}

// representativeTrips picks the trip with the most stop times for each
// route, the lowest trip id winning ties.
func representativeTrips(static *gtfs.Static) map[*gtfs.Route]*gtfs.ScheduledTrip {
	trips := make(map[*gtfs.Route]*gtfs.ScheduledTrip)
	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil {
			continue
		}
		best, ok := trips[trip.Route]
		if !ok ||
			len(trip.StopTimes) > len(best.StopTimes) ||
			(len(trip.StopTimes) == len(best.StopTimes) && trip.ID < best.ID) {
			trips[trip.Route] = trip
		}
	}
	return trips
}

func orderedRoutes(trips map[*gtfs.Route]*gtfs.ScheduledTrip) []*gtfs.Route {
	routes := make([]*gtfs.Route, 0, len(trips))
	for route := range trips {
		routes = append(routes, route)
	}
	slices.SortFunc(routes, func(a, b *gtfs.Route) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return routes
}

// tripStops returns the located stops of a trip in stop sequence order with
// immediate repeats collapsed.
func tripStops(trip *gtfs.ScheduledTrip) []*gtfs.Stop {
	stopTimes := slices.Clone(trip.StopTimes)
	slices.SortStableFunc(stopTimes, func(a, b gtfs.ScheduledStopTime) int {
		return cmp.Compare(a.StopSequence, b.StopSequence)
	})

	stops := make([]*gtfs.Stop, 0, len(stopTimes))
	for _, st := range stopTimes {
		if !located(st.Stop) {
			continue
		}
		if n := len(stops); n > 0 && stops[n-1].Id == st.Stop.Id {
			continue
		}
		stops = append(stops, st.Stop)
	}
	return stops
}

func located(stop *gtfs.Stop) bool {
	return stop != nil && stop.Latitude != nil && stop.Longitude != nil
}

// stopNames maps the ids of every stop served by trips to a catalogue name.
// Stops sharing a name get their id appended.
func stopNames(trips map[*gtfs.Route]*gtfs.ScheduledTrip) map[string]string {
	byID := make(map[string]*gtfs.Stop)
	for _, trip := range trips {
		for _, st := range trip.StopTimes {
			if located(st.Stop) {
				byID[st.Stop.Id] = st.Stop
			}
		}
	}

	counts := make(map[string]int)
	for _, stop := range byID {
		counts[baseStopName(stop)]++
	}

	names := make(map[string]string, len(byID))
	for id, stop := range byID {
		name := baseStopName(stop)
		if counts[name] > 1 {
			name = fmt.Sprintf("%s (%s)", name, id)
		}
		names[id] = name
	}
	return names
}

func baseStopName(stop *gtfs.Stop) string {
	if stop.Name != "" {
		return stop.Name
	}
	return stop.Id
}

// routeNames names each route by its short name, falling back to the long
// name and then the id. Routes sharing a name get their id appended.
func routeNames(routes []gtfs.Route) map[string]string {
	base := func(r gtfs.Route) string {
		switch {
		case r.ShortName != "":
			return r.ShortName
		case r.LongName != "":
			return r.LongName
		default:
			return r.Id
		}
	}

	counts := make(map[string]int)
	for _, r := range routes {
		counts[base(r)]++
	}

	names := make(map[string]string, len(routes))
	for _, r := range routes {
		name := base(r)
		if counts[name] > 1 {
			name = fmt.Sprintf("%s (%s)", name, r.Id)
		}
		names[r.Id] = name
	}
	return names
}

func roadDistance(from, to *gtfs.Stop) int {
	d := geo.ComputeDistance(
		geo.Coordinates{Lat: *from.Latitude, Lng: *from.Longitude},
		geo.Coordinates{Lat: *to.Latitude, Lng: *to.Longitude})
	return int(math.Ceil(d))
}
