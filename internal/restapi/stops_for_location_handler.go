package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

const (
	defaultSearchRadius = 500.0
	maxSearchRadius     = 50000.0
	defaultMaxCount     = 100
	maxMaxCount         = 1000
)

// stopsForLocationHandler lists stops within radius meters of lat/lon,
// closest first, truncated to maxCount.
func (api *RestAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	if !api.networkReady(w, r) {
		return
	}

	errs := fieldErrors{}
	lat := errs.float(r, "lat", true, 0, -90, 90)
	lon := errs.float(r, "lon", true, 0, -180, 180)
	radius := errs.float(r, "radius", false, defaultSearchRadius, 0, maxSearchRadius)
	maxCount := int(errs.float(r, "maxCount", false, defaultMaxCount, 1, maxMaxCount))
	if len(errs) > 0 {
		api.validationErrorResponse(w, r, errs)
		return
	}

	nearby := api.Service.StopsNear(geo.Coordinates{Lat: lat, Lng: lon}, radius)
	limitExceeded := len(nearby) > maxCount
	if limitExceeded {
		nearby = nearby[:maxCount]
	}

	references := models.NewEmptyReferences()
	list := make([]models.NearbyStopModel, 0, len(nearby))
	for _, n := range nearby {
		busNames := api.Service.Catalogue().GetBusesByStop(n.Stop.Name)
		for _, busName := range busNames {
			if ref, ok := api.busReference(busName); ok {
				references.AddBus(ref)
			}
		}
		list = append(list, models.NearbyStopModel{
			StopModel: models.StopModel{
				Name:     n.Stop.Name,
				Lat:      n.Stop.Coordinates.Lat,
				Lon:      n.Stop.Coordinates.Lng,
				BusNames: busNames,
			},
			Distance: n.Distance,
		})
	}

	api.sendResponse(w, r, models.NewListResponse(list, references, limitExceeded, api.Clock))
}
