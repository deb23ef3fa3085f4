package requests

import (
	"fmt"
	"sort"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
)

// FillCatalogue applies base requests in three passes: stops, then road
// distances, then buses. The first failing command aborts the batch.
func FillCatalogue(cat *catalogue.Catalogue, base []BaseRequest) error {
	for i, req := range base {
		switch req.Type {
		case TypeStop:
			cat.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude})
		case TypeBus:
		default:
			return fmt.Errorf("base request %d (%q): %w", i, req.Type, ErrUnknownRequestType)
		}
	}

	for _, req := range base {
		if req.Type != TypeStop {
			continue
		}
		for _, to := range sortedKeys(req.RoadDistances) {
			if err := cat.SetDistance(req.Name, to, req.RoadDistances[to]); err != nil {
				return fmt.Errorf("road distance from stop %q: %w", req.Name, err)
			}
		}
	}

	for _, req := range base {
		if req.Type != TypeBus {
			continue
		}
		if _, err := cat.AddBus(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return fmt.Errorf("bus %q: %w", req.Name, err)
		}
	}

	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
