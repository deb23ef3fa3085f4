package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

// networkReady answers 503 and returns false until a network is loaded.
func (api *RestAPI) networkReady(w http.ResponseWriter, r *http.Request) bool {
	if api.Ready() {
		return true
	}
	api.sendError(w, r, http.StatusServiceUnavailable, "transit network not loaded")
	return false
}

func stopReference(stop *catalogue.Stop) models.StopReference {
	return models.StopReference{
		Name: stop.Name,
		Lat:  stop.Coordinates.Lat,
		Lon:  stop.Coordinates.Lng,
	}
}

func (api *RestAPI) busReference(name string) (models.BusReference, bool) {
	bus, ok := api.Service.Catalogue().FindBus(name)
	if !ok {
		return models.BusReference{}, false
	}
	return models.BusReference{Name: bus.Name, IsRoundTrip: bus.IsCircular}, true
}
