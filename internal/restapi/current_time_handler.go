package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

// currentTimeHandler reports the server clock.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeData(api.Clock.Now())
	api.sendResponse(w, r, models.NewOKResponse(timeData, api.Clock))
}
