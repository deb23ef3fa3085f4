package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
)

// threeStops returns stops A(0,0), B(0,1), C(0,2) with A->B and B->C set to
// 1000 meters.
func threeStops(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	c := catalogue.New()
	c.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	c.AddStop("B", geo.Coordinates{Lat: 0, Lng: 1})
	c.AddStop("C", geo.Coordinates{Lat: 0, Lng: 2})
	require.NoError(t, c.SetDistance("A", "B", 1000))
	require.NoError(t, c.SetDistance("B", "C", 1000))
	return c
}

func addBus(t *testing.T, c *catalogue.Catalogue, name string, stops []string, circular bool) {
	t.Helper()
	_, err := c.AddBus(name, stops, circular)
	require.NoError(t, err)
}

func newRouter(t *testing.T, c *catalogue.Catalogue, opts ...Option) *TransportRouter {
	t.Helper()
	tr, err := New(c, Settings{BusWaitTime: 6, BusVelocity: 40}, opts...)
	require.NoError(t, err)
	return tr
}

func assertWellFormed(t *testing.T, route Route, wait float64) {
	t.Helper()
	assert.GreaterOrEqual(t, route.TotalTime, 0.0)
	var sum float64
	for _, item := range route.Items {
		if item.Type == ItemWait {
			assert.Equal(t, wait, item.Time)
		}
		sum += item.Time
	}
	assert.InDelta(t, route.TotalTime, sum, 1e-9)
}

func TestCircularBusRoute(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C", "A"}, true)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)

	require.Len(t, route.Items, 2)
	assert.Equal(t, Item{Type: ItemWait, StopName: "A", Time: 6}, route.Items[0])
	assert.Equal(t, ItemBus, route.Items[1].Type)
	assert.Equal(t, "1", route.Items[1].BusName)
	assert.Equal(t, 2, route.Items[1].SpanCount)
	assert.InDelta(t, 3.0, route.Items[1].Time, 1e-9)
	assert.InDelta(t, 9.0, route.TotalTime, 1e-9)
	assertWellFormed(t, route, 6)
}

func TestLinearBusReverseRoute(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "2", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("C", "A")
	require.True(t, ok)

	require.Len(t, route.Items, 2)
	assert.Equal(t, Item{Type: ItemWait, StopName: "C", Time: 6}, route.Items[0])
	assert.Equal(t, "2", route.Items[1].BusName)
	assert.Equal(t, 2, route.Items[1].SpanCount)
	assert.InDelta(t, 3.0, route.Items[1].Time, 1e-9)
	assert.InDelta(t, 9.0, route.TotalTime, 1e-9)
}

func TestCircularBusHasNoReverseDirection(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C"}, true)
	tr := newRouter(t, c)

	_, ok := tr.BuildRoute("C", "A")
	assert.False(t, ok)

	_, ok = tr.BuildRoute("A", "C")
	assert.True(t, ok)
}

func TestSameStopIsMandatoryWait(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C", "A"}, true)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("B", "B")
	require.True(t, ok)
	assert.Equal(t, 6.0, route.TotalTime)
	assert.Equal(t, []Item{{Type: ItemWait, StopName: "B", Time: 6}}, route.Items)
}

func TestBuildRouteNotFound(t *testing.T) {
	c := threeStops(t)
	c.AddStop("Island", geo.Coordinates{Lat: 10, Lng: 10})
	addBus(t, c, "1", []string{"A", "B"}, false)
	tr := newRouter(t, c)

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"unknown origin", "Nowhere", "A"},
		{"unknown destination", "A", "Nowhere"},
		{"unserved stop", "A", "Island"},
		{"no bus reaches destination", "A", "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, ok := tr.BuildRoute(tt.from, tt.to)
			assert.False(t, ok)
			assert.Equal(t, Route{}, route)
		})
	}
}

func TestRouteWithTransfer(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "first", []string{"A", "B"}, false)
	addBus(t, c, "second", []string{"B", "C"}, false)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)

	require.Len(t, route.Items, 4)
	assert.Equal(t, "A", route.Items[0].StopName)
	assert.Equal(t, "first", route.Items[1].BusName)
	assert.Equal(t, 1, route.Items[1].SpanCount)
	assert.Equal(t, "B", route.Items[2].StopName)
	assert.Equal(t, "second", route.Items[3].BusName)
	assert.InDelta(t, 6+1.5+6+1.5, route.TotalTime, 1e-9)
	assertWellFormed(t, route, 6)
}

func TestRideThroughBeatsTransfer(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "through", []string{"A", "B", "C"}, false)
	addBus(t, c, "shuttle", []string{"B", "C"}, false)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)

	require.Len(t, route.Items, 2)
	assert.Equal(t, "through", route.Items[1].BusName)
	assert.Equal(t, 2, route.Items[1].SpanCount)
}

func TestRideEdgeCarriesItsOwnBus(t *testing.T) {
	c := threeStops(t)
	require.NoError(t, c.SetDistance("A", "C", 2000))
	addBus(t, c, "express", []string{"A", "C"}, false)
	addBus(t, c, "local", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c)

	route, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)
	require.Len(t, route.Items, 2)

	ride := route.Items[1]
	switch ride.BusName {
	case "express":
		assert.Equal(t, 1, ride.SpanCount)
	case "local":
		assert.Equal(t, 2, ride.SpanCount)
	default:
		t.Fatalf("unexpected bus %q", ride.BusName)
	}
	assert.InDelta(t, 9.0, route.TotalTime, 1e-9)

	again, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)
	assert.Equal(t, route, again)
}

func TestZeroWaitTime(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C"}, false)
	tr, err := New(c, Settings{BusWaitTime: 0, BusVelocity: 60})
	require.NoError(t, err)

	route, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)
	assert.InDelta(t, 2.0, route.TotalTime, 1e-9)
	assertWellFormed(t, route, 0)
}

func TestGraphShape(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "circle", []string{"A", "B", "C", "A"}, true)
	addBus(t, c, "line", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c)

	g := tr.Graph()
	assert.Equal(t, 6, g.VertexCount())
	// 3 wait edges, circle: 6 pairs minus the A->A span, line: 3 pairs each way.
	assert.Equal(t, 3+5+6, g.EdgeCount())
	assert.True(t, g.Frozen())

	for _, stop := range c.GetAllStops() {
		wait := g.IncidentEdges(arrivedVertex(stop.ID))
		require.Len(t, wait, 1)
		edge := g.Edge(wait[0])
		assert.Equal(t, readyVertex(stop.ID), edge.To)
		assert.Equal(t, 6.0, edge.Weight)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	c := threeStops(t)
	c.AddStop("D", geo.Coordinates{Lat: 1, Lng: 1})
	require.NoError(t, c.SetDistance("C", "D", 2500))
	require.NoError(t, c.SetDistance("D", "A", 700))
	addBus(t, c, "1", []string{"A", "B", "C", "D", "A"}, true)
	addBus(t, c, "2", []string{"B", "D"}, false)

	first := newRouter(t, c)
	second := newRouter(t, c)

	names := []string{"A", "B", "C", "D"}
	for _, from := range names {
		for _, to := range names {
			r1, ok1 := first.BuildRoute(from, to)
			r2, ok2 := second.BuildRoute(from, to)
			assert.Equal(t, ok1, ok2, "%s -> %s", from, to)
			assert.Equal(t, r1.TotalTime, r2.TotalTime, "%s -> %s", from, to)
			if ok1 {
				assertWellFormed(t, r1, 6)
			}
		}
	}
}

func TestInvalidSettings(t *testing.T) {
	c := threeStops(t)

	tests := []struct {
		name     string
		settings Settings
	}{
		{"zero velocity", Settings{BusWaitTime: 6, BusVelocity: 0}},
		{"negative velocity", Settings{BusWaitTime: 6, BusVelocity: -5}},
		{"negative wait", Settings{BusWaitTime: -1, BusVelocity: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(c, tt.settings)
			assert.Error(t, err)
			assert.Nil(t, tr)
		})
	}

	assert.NoError(t, DefaultSettings().Validate())
}

func TestItineraryCache(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c, WithCache(16))

	first, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)
	first.Items[0].StopName = "mutated"

	second, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)
	assert.Equal(t, "A", second.Items[0].StopName)

	hits, misses := tr.CacheStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCacheDisabledByDefault(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c)

	_, ok := tr.BuildRoute("A", "C")
	require.True(t, ok)

	hits, misses := tr.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestBuildRouteContextCancelled(t *testing.T) {
	c := threeStops(t)
	addBus(t, c, "1", []string{"A", "B", "C"}, false)
	tr := newRouter(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := tr.BuildRouteContext(ctx, "A", "C")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
