package catalogue

import "github.com/AkhmadOnline/transport-catalogue/internal/geo"

// StopID is the stable arena index of a stop.
type StopID int

// BusID is the stable arena index of a bus.
type BusID int

type Stop struct {
	ID          StopID
	Name        string
	Coordinates geo.Coordinates
}

// Bus stores its declared stop sequence. For circular buses the sequence is
// expected to already end where it started.
type Bus struct {
	ID         BusID
	Name       string
	Stops      []StopID
	IsCircular bool
}

// BusInfo is the derived statistics of a bus. StopsOnRoute is 0 when the bus
// is unknown.
type BusInfo struct {
	Name         string
	StopsOnRoute int
	UniqueStops  int
	RouteLength  int
	GeoLength    float64
	Curvature    float64
}

// Found reports whether the info describes an existing bus.
func (i BusInfo) Found() bool {
	return i.StopsOnRoute > 0
}

// NearbyStop is a stop returned by a radius search together with its
// great-circle distance from the search center.
type NearbyStop struct {
	Stop     *Stop
	Distance float64
}

// Stats summarizes the catalogue contents.
type Stats struct {
	Stops     int `json:"stops"`
	Buses     int `json:"buses"`
	Distances int `json:"distances"`
}
