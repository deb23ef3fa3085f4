// Package app holds the dependencies shared by HTTP handlers, middleware and
// the web UI.
package app

import (
	"log/slog"

	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
	"github.com/AkhmadOnline/transport-catalogue/internal/clock"
	"github.com/AkhmadOnline/transport-catalogue/internal/metrics"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

// Application is built once at startup. Service is read-only after the
// network is loaded and is safe to share between request goroutines.
type Application struct {
	Config     appconf.Config
	DataConfig appconf.DataConfig
	Logger     *slog.Logger
	Service    *transit.Service
	Clock      clock.Clock
	Metrics    *metrics.Metrics
}

// Ready reports whether a network has been loaded.
func (app *Application) Ready() bool {
	return app != nil && app.Service != nil
}
