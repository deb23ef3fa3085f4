package restapi

import (
	"log/slog"
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

type validationErrorData struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())))
	api.sendError(w, r, http.StatusInternalServerError, "internal server error")
}

// validationErrorResponse answers 400 with the offending parameters listed
// under data.fieldErrors.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	api.writeError(w, r, models.ResponseModel{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Data:        validationErrorData{FieldErrors: fieldErrors},
		Text:        "invalid request parameters",
		Version:     2,
	})
}
