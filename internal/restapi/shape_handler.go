package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

// shapeHandler returns the realized path of a bus as a Google encoded
// polyline, with the path's stop count as length.
func (api *RestAPI) shapeHandler(w http.ResponseWriter, r *http.Request) {
	if !api.networkReady(w, r) {
		return
	}

	shape, ok := api.Service.BusShape(pathName(r))
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	entry := models.ShapeModel{
		BusName: shape.BusName,
		Length:  shape.Length,
		Points:  shape.Points,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock))
}
