// Package geo holds the coordinate type shared by the catalogue and the
// great-circle helpers used for curvature and nearby-stop searches.
package geo

import "math"

const (
	// EarthRadiusInMeters is the mean radius used for great-circle distances.
	EarthRadiusInMeters = 6371000.0

	degreesToRadians = math.Pi / 180
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateBounds represents a bounding box with min/max latitude and longitude
type CoordinateBounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// ComputeDistance returns the great-circle distance between two points in meters.
// Identical points are exactly 0.
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}

	lat1 := from.Lat * degreesToRadians
	lat2 := to.Lat * degreesToRadians
	deltaLng := math.Abs(from.Lng-to.Lng) * degreesToRadians

	cosAngle := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(deltaLng)
	// rounding can push nearly-identical points slightly past 1
	cosAngle = math.Max(-1, math.Min(1, cosAngle))

	return math.Acos(cosAngle) * EarthRadiusInMeters
}

// CalculateBounds returns the box that contains every point within distance
// meters of center.
func CalculateBounds(center Coordinates, distance float64) CoordinateBounds {
	latRadians := center.Lat * degreesToRadians
	lonRadians := center.Lng * degreesToRadians

	latRadius := EarthRadiusInMeters
	lonRadius := math.Cos(latRadians) * EarthRadiusInMeters

	latOffset := distance / latRadius
	lonOffset := distance / lonRadius

	return CoordinateBounds{
		MinLat: (latRadians - latOffset) / degreesToRadians,
		MaxLat: (latRadians + latOffset) / degreesToRadians,
		MinLon: (lonRadians - lonOffset) / degreesToRadians,
		MaxLon: (lonRadians + lonOffset) / degreesToRadians,
	}
}

// BoundsOf computes the region covered by points. The second return value is
// false when points is empty.
func BoundsOf(points []Coordinates) (CoordinateBounds, bool) {
	if len(points) == 0 {
		return CoordinateBounds{}, false
	}

	bounds := CoordinateBounds{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLon: points[0].Lng,
		MaxLon: points[0].Lng,
	}
	for _, p := range points[1:] {
		bounds.MinLat = math.Min(bounds.MinLat, p.Lat)
		bounds.MaxLat = math.Max(bounds.MaxLat, p.Lat)
		bounds.MinLon = math.Min(bounds.MinLon, p.Lng)
		bounds.MaxLon = math.Max(bounds.MaxLon, p.Lng)
	}
	return bounds, true
}

// SplitAtAntimeridian returns boxes inside [-180, 180] longitude that cover
// b. A box crossing the antimeridian becomes two; a box wider than the
// globe becomes one full-width box.
func (b CoordinateBounds) SplitAtAntimeridian() []CoordinateBounds {
	switch {
	case b.MaxLon-b.MinLon >= 360 || math.IsNaN(b.MinLon) || math.IsNaN(b.MaxLon):
		b.MinLon, b.MaxLon = -180, 180
		return []CoordinateBounds{b}
	case b.MinLon < -180:
		east, west := b, b
		east.MinLon, east.MaxLon = b.MinLon+360, 180
		west.MinLon = -180
		return []CoordinateBounds{east, west}
	case b.MaxLon > 180:
		east, west := b, b
		east.MaxLon = 180
		west.MinLon, west.MaxLon = -180, b.MaxLon-360
		return []CoordinateBounds{east, west}
	default:
		return []CoordinateBounds{b}
	}
}

// IsOutOfBounds returns true only if the inner bounds have no overlap
// with the outer bounds.
func IsOutOfBounds(inner, outer CoordinateBounds) bool {
	return inner.MaxLat < outer.MinLat ||
		inner.MinLat > outer.MaxLat ||
		inner.MaxLon < outer.MinLon ||
		inner.MinLon > outer.MaxLon
}
