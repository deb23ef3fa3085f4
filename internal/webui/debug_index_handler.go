package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func writeDebugData(w http.ResponseWriter, r *http.Request, title string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{Title: title, Pre: dumpConfig.Sdump(data)})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to execute debug template", err,
			slog.String("title", title))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type cacheStats struct {
	Hits   uint64
	Misses uint64
}

// debugIndexHandler dumps loaded network data with spew. It is hidden in
// production.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Application == nil || webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	if !webUI.Ready() {
		http.Error(w, "transit network not loaded", http.StatusServiceUnavailable)
		return
	}

	service := webUI.Service
	cat := service.Catalogue()

	var data any
	var title string

	switch r.URL.Query().Get("dataType") {
	case "stats":
		data = service.Stats()
		title = "Catalogue - Stats"
	case "bounds":
		bounds, _ := service.Bounds()
		data = bounds
		title = "Catalogue - Bounds"
	case "settings":
		data = service.Router().Settings()
		title = "Router - Settings"
	case "stops":
		data = cat.GetAllStops()
		title = "Catalogue - Stops"
	case "buses":
		data = cat.GetAllBuses()
		title = "Catalogue - Buses"
	case "bus_stats":
		stats := make([]transit.BusStat, 0)
		for _, bus := range cat.GetAllBuses() {
			if stat, ok := service.GetBusStat(bus.Name); ok {
				stats = append(stats, stat)
			}
		}
		data = stats
		title = "Catalogue - Bus statistics"
	case "cache":
		hits, misses := service.Router().CacheStats()
		data = cacheStats{Hits: hits, Misses: misses}
		title = "Router - Itinerary cache"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, bounds, settings, stops, buses, bus_stats, cache.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, r, title, data)
}
