package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/AkhmadOnline/transport-catalogue/internal/buildinfo"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, dataCfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", cfg.LogLevel)
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger, logCloser := logging.NewLogger(os.Stdout, logging.Options{
		Level:  level,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	slog.SetDefault(logger)

	logging.LogOperation(logger, "starting",
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.ShortHash()),
		slog.String("env", cfg.Env.String()),
		slog.String("data_path", dataCfg.Path),
		slog.String("data_format", string(dataCfg.Format)))

	coreApp, err := BuildApplication(cfg, dataCfg)
	if err != nil {
		logging.Fatal(logger, "failed to build application", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	srv, api := CreateServer(coreApp, cfg)
	err = Run(ctx, srv, api, logger)
	stop()
	coreApp.Metrics.Shutdown()
	logging.SafeCloseWithLogging(logCloser, logger, "log_file")

	if err != nil {
		logging.Fatal(logger, "server exited with error", err)
	}
}
