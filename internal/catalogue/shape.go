package catalogue

import "github.com/twpayne/go-polyline"

// BusPolyline encodes the realized path of a bus as a Google encoded
// polyline together with its point count. ok is false for unknown buses.
func (c *Catalogue) BusPolyline(name string) (encoded string, length int, ok bool) {
	bus, ok := c.FindBus(name)
	if !ok {
		return "", 0, false
	}

	path := c.RealizedPath(bus)
	coords := make([][]float64, 0, len(path))
	for _, id := range path {
		stop := c.stops[id]
		coords = append(coords, []float64{stop.Coordinates.Lat, stop.Coordinates.Lng})
	}

	return string(polyline.EncodeCoords(coords)), len(coords), true
}
