package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AkhmadOnline/transport-catalogue/internal/appconf"
)

// envOrDefault reads a default from the environment, which .env files feed.
func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// parseConfig reads the command line. A config file replaces every other
// flag, so the two cannot be combined.
func parseConfig(args []string, output io.Writer) (appconf.Config, appconf.DataConfig, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)

	configFile := fs.String("config", "", "Path to a JSON or YAML config file")
	port := fs.Int("port", 4000, "API server port")
	env := fs.String("env", envOrDefault("CATALOGUE_ENV", "development"), "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", envOrDefault("CATALOGUE_API_KEYS", "test"), "Comma separated API keys")
	rateLimit := fs.Int("rate-limit", 100, "Requests per second per API key")
	verbose := fs.Bool("verbose", false, "Log at debug level")
	logLevel := fs.String("log-level", envOrDefault("CATALOGUE_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	logFormat := fs.String("log-format", "json", "Log format (json|text)")
	logFile := fs.String("log-file", "", "Also write logs to this rotated file")
	dataPath := fs.String("data-path", envOrDefault("CATALOGUE_DATA_PATH", ""), "JSON document, text batch or GTFS zip (path or URL)")
	dataFormat := fs.String("data-format", "", "Data format (json|text|gtfs); guessed from the extension when empty")
	busWaitTime := fs.Int("bus-wait-time", -1, "Override the wait time at stops, in minutes")
	busVelocity := fs.Float64("bus-velocity", 0, "Override the bus velocity, in km/h")
	routeCacheSize := fs.Int("route-cache-size", 0, "Number of itineraries to cache (0 disables the cache)")
	authHeaderKey := fs.String("data-auth-header-key", "", "Header name sent when downloading a GTFS feed")
	authHeaderValue := fs.String("data-auth-header-value", envOrDefault("CATALOGUE_DATA_AUTH", ""), "Header value sent when downloading a GTFS feed")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, appconf.DataConfig{}, err
	}

	if *configFile != "" {
		var others []string
		fs.Visit(func(f *flag.Flag) {
			if f.Name != "config" {
				others = append(others, f.Name)
			}
		})
		if len(others) > 0 {
			return appconf.Config{}, appconf.DataConfig{}, fmt.Errorf("--config cannot be combined with other flags (got %v)", others)
		}

		fileCfg, err := appconf.LoadFromFile(*configFile)
		if err != nil {
			return appconf.Config{}, appconf.DataConfig{}, err
		}
		return fileCfg.ToAppConfig(), fileCfg.ToDataConfig(), nil
	}

	if *dataPath == "" {
		return appconf.Config{}, appconf.DataConfig{}, errors.New("--data-path is required")
	}

	cfg := appconf.Config{
		Port:      *port,
		Env:       appconf.EnvFlagToEnvironment(*env),
		ApiKeys:   ParseAPIKeys(*apiKeys),
		Verbose:   *verbose,
		RateLimit: *rateLimit,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
		LogFile:   *logFile,
	}

	dataCfg := appconf.DataConfig{
		Path:            *dataPath,
		Format:          appconf.DetectFormat(*dataPath, *dataFormat),
		RouteCacheSize:  *routeCacheSize,
		AuthHeaderKey:   *authHeaderKey,
		AuthHeaderValue: *authHeaderValue,
	}
	if *busWaitTime >= 0 {
		dataCfg.BusWaitTime = busWaitTime
	}
	if *busVelocity > 0 {
		dataCfg.BusVelocity = busVelocity
	}

	return cfg, dataCfg, nil
}
