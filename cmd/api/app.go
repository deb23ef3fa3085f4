package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AkhmadOnline/transport-catalogue/internal/app"
	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/clock"
	"github.com/AkhmadOnline/transport-catalogue/internal/gtfs"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/metrics"
	"github.com/AkhmadOnline/transport-catalogue/internal/requests"
	"github.com/AkhmadOnline/transport-catalogue/internal/restapi"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
	"github.com/AkhmadOnline/transport-catalogue/internal/webui"
)

const (
	cacheStatsInterval = 15 * time.Second
	shutdownTimeout    = 30 * time.Second
)

// ParseAPIKeys splits a comma separated key list and trims each key.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}
	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication loads the transit network and wires the dependencies the
// HTTP layer shares.
func BuildApplication(cfg appconf.Config, dataCfg appconf.DataConfig) (*app.Application, error) {
	logger := slog.Default()
	m := metrics.NewWithLogger(logger)

	opts := requests.Options{
		Logger:    logger,
		Metrics:   m,
		CacheSize: dataCfg.RouteCacheSize,
	}
	service, err := loadNetwork(context.Background(), dataCfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load transit network: %w", err)
	}

	if dataCfg.RouteCacheSize > 0 {
		m.StartCacheStatsCollector(service.Router(), cacheStatsInterval)
	}

	return &app.Application{
		Config:     cfg,
		DataConfig: dataCfg,
		Logger:     logger,
		Service:    service,
		Clock:      clock.RealClock{},
		Metrics:    m,
	}, nil
}

func loadNetwork(ctx context.Context, dataCfg appconf.DataConfig, opts requests.Options) (*transit.Service, error) {
	if dataCfg.Format == appconf.FormatGTFS {
		static, err := gtfs.LoadStatic(ctx, gtfs.Config{
			Source:                dataCfg.Path,
			StaticAuthHeaderKey:   dataCfg.AuthHeaderKey,
			StaticAuthHeaderValue: dataCfg.AuthHeaderValue,
		})
		if err != nil {
			return nil, err
		}
		cat := catalogue.New()
		if _, err := gtfs.ImportStatic(cat, static, opts.Logger); err != nil {
			return nil, err
		}
		return requests.NewService(cat, overrideSettings(router.DefaultSettings(), dataCfg), opts)
	}

	f, err := os.Open(dataCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer logging.SafeCloseWithLogging(f, opts.Logger, "data_file")

	switch dataCfg.Format {
	case appconf.FormatText:
		cat, err := requests.LoadText(f)
		if err != nil {
			return nil, err
		}
		return requests.NewService(cat, overrideSettings(router.DefaultSettings(), dataCfg), opts)
	case appconf.FormatJSON:
		doc, err := requests.DecodeDocument(f)
		if err != nil {
			return nil, err
		}
		settings := overrideSettings(doc.Settings(), dataCfg)
		opts.Settings = &settings
		return requests.BuildService(doc, opts)
	default:
		return nil, fmt.Errorf("unsupported data format %q", dataCfg.Format)
	}
}

// overrideSettings applies the routing values set in the data config.
func overrideSettings(settings router.Settings, dataCfg appconf.DataConfig) router.Settings {
	if dataCfg.BusWaitTime != nil {
		settings.BusWaitTime = *dataCfg.BusWaitTime
	}
	if dataCfg.BusVelocity != nil {
		settings.BusVelocity = *dataCfg.BusVelocity
	}
	return settings
}

// CreateServer builds the HTTP server. The caller must call Shutdown on the
// returned RestAPI once the server has stopped.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)
	webUI := &webui.WebUI{Application: coreApp}

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webUI.SetWebUIRoutes(mux)
	if coreApp.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(coreApp.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	// Metrics read r.Pattern, which the mux sets on the request it receives,
	// so nothing between the two may replace the request.
	var handler http.Handler = restapi.CompressionMiddleware(mux)
	if coreApp.Metrics != nil {
		handler = restapi.MetricsHandler(coreApp.Metrics)(handler)
	}
	handler = restapi.NewRequestLoggingMiddleware(coreApp.Logger, coreApp.Clock)(handler)
	handler = restapi.RequestIDMiddleware(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return srv, api
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down gracefully.
func Run(ctx context.Context, srv *http.Server, api *restapi.RestAPI, logger *slog.Logger) error {
	defer api.Shutdown()

	errCh := make(chan error, 1)
	go func() {
		logging.LogOperation(logger, "server_starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.LogOperation(logger, "server_stopped")
	return nil
}
