package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

func (api *RestAPI) busHandler(w http.ResponseWriter, r *http.Request) {
	if !api.networkReady(w, r) {
		return
	}

	name := pathName(r)
	stat, ok := api.Service.GetBusStat(name)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	cat := api.Service.Catalogue()
	bus, _ := cat.FindBus(name)

	references := models.NewEmptyReferences()
	stopNames := make([]string, 0, len(bus.Stops))
	for _, id := range bus.Stops {
		stop := cat.Stop(id)
		stopNames = append(stopNames, stop.Name)
		references.AddStop(stopReference(stop))
	}

	entry := models.BusModel{
		Name:            stat.Name,
		Curvature:       stat.Curvature,
		GeoLength:       stat.GeoLength,
		IsRoundTrip:     stat.IsRoundTrip,
		RouteLength:     stat.RouteLength,
		StopCount:       stat.StopCount,
		UniqueStopCount: stat.UniqueStopCount,
		StopNames:       stopNames,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references, api.Clock))
}
