package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

func (api *RestAPI) stopHandler(w http.ResponseWriter, r *http.Request) {
	if !api.networkReady(w, r) {
		return
	}

	name := pathName(r)
	busNames, ok := api.Service.GetStopInfo(name)
	if !ok {
		api.sendNotFound(w, r)
		return
	}
	stop, _ := api.Service.Catalogue().FindStop(name)

	references := models.NewEmptyReferences()
	for _, busName := range busNames {
		if ref, ok := api.busReference(busName); ok {
			references.AddBus(ref)
		}
	}

	entry := models.StopModel{
		Name:     stop.Name,
		Lat:      stop.Coordinates.Lat,
		Lon:      stop.Coordinates.Lng,
		BusNames: busNames,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references, api.Clock))
}
