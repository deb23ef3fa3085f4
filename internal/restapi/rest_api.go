// Package restapi serves the transit queries over HTTP in the OneBusAway
// response style: every answer is a JSON envelope with code, text, version,
// currentTime and data.
package restapi

import (
	"net/http"
	"time"

	"github.com/AkhmadOnline/transport-catalogue/internal/app"
	"github.com/AkhmadOnline/transport-catalogue/internal/clock"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

func NewRestAPI(application *app.Application) *RestAPI {
	if application.Clock == nil {
		application.Clock = clock.RealClock{}
	}
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second, nil, application.Clock),
	}
}

// Cache-Control max-age tiers, in seconds.
const (
	cacheNone   = 0
	cacheShort  = 30
	cacheStatic = 300
)

// SetRoutes registers the API endpoints on mux. Everything under /api/where
// needs a valid ?key= and is rate limited per key; /healthz is open.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	handle := func(pattern string, cacheSeconds int, handler http.HandlerFunc) {
		var h http.Handler = api.requireAPIKey(handler)
		h = api.rateLimiter.Handler()(h)
		mux.Handle(pattern, CacheControlMiddleware(cacheSeconds, h))
	}

	handle("GET /api/where/bus/{name}", cacheStatic, api.busHandler)
	handle("GET /api/where/stop/{name}", cacheStatic, api.stopHandler)
	handle("GET /api/where/shape/{name}", cacheStatic, api.shapeHandler)
	handle("GET /api/where/stops-for-location.json", cacheStatic, api.stopsForLocationHandler)
	handle("GET /api/where/route.json", cacheStatic, api.routeHandler)
	handle("GET /api/where/current-time.json", cacheShort, api.currentTimeHandler)
	handle("GET /api/where/config.json", cacheNone, api.configHandler)

	mux.HandleFunc("GET /healthz", api.healthHandler)
}

func (api *RestAPI) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		next(w, r)
	}
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
