package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhmadOnline/transport-catalogue/internal/app"
	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

func testWebUI(t *testing.T, env appconf.Environment) *WebUI {
	t.Helper()
	c := catalogue.New()
	c.AddStop("Tolstopaltsevo", geo.Coordinates{Lat: 55.611087, Lng: 37.20829})
	c.AddStop("Marushkino", geo.Coordinates{Lat: 55.595884, Lng: 37.209755})
	require.NoError(t, c.SetDistance("Tolstopaltsevo", "Marushkino", 3900))
	_, err := c.AddBus("750", []string{"Tolstopaltsevo", "Marushkino"}, false)
	require.NoError(t, err)

	tr, err := router.New(c, router.DefaultSettings())
	require.NoError(t, err)

	return &WebUI{Application: &app.Application{
		Config:  appconf.Config{Env: env},
		Service: transit.NewService(c, tr, nil, nil),
	}}
}

func TestDebugIndexHandler_ProductionReturns404(t *testing.T) {
	webUI := testWebUI(t, appconf.Production)

	rr := httptest.NewRecorder()
	webUI.debugIndexHandler(rr, httptest.NewRequest(http.MethodGet, "/debug/?dataType=stops", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code, "Should return 404 in Production")
}

func TestDebugIndexHandler_NotLoaded(t *testing.T) {
	webUI := &WebUI{Application: &app.Application{Config: appconf.Config{Env: appconf.Development}}}

	rr := httptest.NewRecorder()
	webUI.debugIndexHandler(rr, httptest.NewRequest(http.MethodGet, "/debug/?dataType=stops", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestDebugIndexHandler_DataTypes(t *testing.T) {
	webUI := testWebUI(t, appconf.Development)
	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{"stats", "Catalogue - Stats", "Distances"},
		{"bounds", "Catalogue - Bounds", "MinLat"},
		{"settings", "Router - Settings", "BusVelocity"},
		{"stops", "Catalogue - Stops", "Tolstopaltsevo"},
		{"buses", "Catalogue - Buses", "750"},
		{"bus_stats", "Catalogue - Bus statistics", "RouteLength"},
		{"cache", "Router - Itinerary cache", "Misses"},
		{"", "Choose a data type", "Please use one of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/?dataType="+tt.dataType, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), "<h1>"+tt.title+"</h1>")
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}
