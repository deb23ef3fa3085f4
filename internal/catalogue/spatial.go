package catalogue

import (
	"sort"

	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
)

func point(c geo.Coordinates) [2]float64 {
	return [2]float64{c.Lng, c.Lat}
}

// StopsNear returns the stops within radius meters of center, closest first.
// Stops at the same distance are ordered by name.
func (c *Catalogue) StopsNear(center geo.Coordinates, radius float64) []NearbyStop {
	if radius <= 0 {
		return []NearbyStop{}
	}

	nearby := []NearbyStop{}
	for _, box := range geo.CalculateBounds(center, radius).SplitAtAntimeridian() {
		minPoint := [2]float64{box.MinLon, box.MinLat}
		maxPoint := [2]float64{box.MaxLon, box.MaxLat}
		c.spatial.Search(minPoint, maxPoint, func(_, _ [2]float64, id StopID) bool {
			stop := c.stops[id]
			distance := geo.ComputeDistance(center, stop.Coordinates)
			if distance <= radius {
				nearby = append(nearby, NearbyStop{Stop: stop, Distance: distance})
			}
			return true
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].Distance != nearby[j].Distance {
			return nearby[i].Distance < nearby[j].Distance
		}
		return nearby[i].Stop.Name < nearby[j].Stop.Name
	})
	return nearby
}
