package restapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"

	"github.com/AkhmadOnline/transport-catalogue/internal/app"
	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/clock"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

// testService loads a small network:
//
//	Main Square --ring (circular)-- A --14 (linear)-- B -- C
//
// plus a stop no bus serves. Wait 6 min, 40 km/h.
func testService(t *testing.T) *transit.Service {
	t.Helper()
	c := catalogue.New()
	c.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	c.AddStop("B", geo.Coordinates{Lat: 0, Lng: 0.01})
	c.AddStop("C", geo.Coordinates{Lat: 0, Lng: 0.02})
	c.AddStop("Main Square", geo.Coordinates{Lat: 0.01, Lng: 0})
	c.AddStop("Lonely", geo.Coordinates{Lat: 1, Lng: 1})
	require.NoError(t, c.SetDistance("A", "B", 1200))
	require.NoError(t, c.SetDistance("B", "C", 1300))
	require.NoError(t, c.SetDistance("A", "Main Square", 1000))

	_, err := c.AddBus("14", []string{"A", "B", "C"}, false)
	require.NoError(t, err)
	_, err = c.AddBus("ring", []string{"A", "Main Square", "A"}, true)
	require.NoError(t, err)

	tr, err := router.New(c, router.DefaultSettings())
	require.NoError(t, err)
	return transit.NewService(c, tr, nil, nil)
}

func createTestApiWithClock(t *testing.T, c clock.Clock) *RestAPI {
	t.Helper()
	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
		},
		DataConfig: appconf.DataConfig{Format: appconf.FormatJSON},
		Service:    testService(t),
		Clock:      c,
	}
	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithClock(t, clock.RealClock{})
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &model), "body: %s", body)
	return resp, model
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

// entryOf returns data.entry of a decoded envelope.
func entryOf(t *testing.T, model models.ResponseModel) map[string]any {
	t.Helper()
	data, ok := model.Data.(map[string]any)
	require.True(t, ok, "data is %T", model.Data)
	entry, ok := data["entry"].(map[string]any)
	require.True(t, ok, "entry is %T", data["entry"])
	return entry
}

// referencesOf returns data.references of a decoded envelope.
func referencesOf(t *testing.T, model models.ResponseModel) map[string]any {
	t.Helper()
	data, ok := model.Data.(map[string]any)
	require.True(t, ok)
	refs, ok := data["references"].(map[string]any)
	require.True(t, ok)
	return refs
}

// collectStrings extracts the string field key of every object in list.
func collectStrings(t *testing.T, list []any, key string) []string {
	t.Helper()
	out := make([]string, 0, len(list))
	for i, item := range list {
		object, ok := item.(map[string]any)
		require.True(t, ok, "item %d is %T", i, item)
		value, ok := object[key].(string)
		require.True(t, ok, "item %d key %q is %T", i, key, object[key])
		out = append(out, value)
	}
	return out
}

// decodePolylinePoints decodes a Google encoded polyline into [lat, lon]
// pairs.
func decodePolylinePoints(t *testing.T, encoded string) [][]float64 {
	t.Helper()
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	return coords
}
