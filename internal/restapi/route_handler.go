package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/models"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
)

// routeHandler answers the fastest itinerary between two stops given by name
// in the from and to query parameters.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	if !api.networkReady(w, r) {
		return
	}

	errs := fieldErrors{}
	from := errs.requiredString(r, "from")
	to := errs.requiredString(r, "to")
	if len(errs) > 0 {
		api.validationErrorResponse(w, r, errs)
		return
	}

	route, ok, err := api.Service.BuildRoute(r.Context(), from, to)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	references := models.NewEmptyReferences()
	cat := api.Service.Catalogue()
	items := make([]models.ItineraryItemModel, 0, len(route.Items))
	for _, item := range route.Items {
		items = append(items, models.ItineraryItemModel{
			Type:      string(item.Type),
			StopName:  item.StopName,
			BusName:   item.BusName,
			SpanCount: item.SpanCount,
			Time:      item.Time,
		})

		switch item.Type {
		case router.ItemWait:
			if stop, ok := cat.FindStop(item.StopName); ok {
				references.AddStop(stopReference(stop))
			}
		case router.ItemBus:
			if ref, ok := api.busReference(item.BusName); ok {
				references.AddBus(ref)
			}
		}
	}

	entry := models.ItineraryModel{
		From:      from,
		To:        to,
		TotalTime: route.TotalTime,
		Items:     items,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, references, api.Clock))
}
