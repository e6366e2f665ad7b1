// Command clean-names normalizes a source record CSV into the fixed-schema
// output CSV using a prebuilt nickname lookup table.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/okian/nameprep/internal/app"
	"github.com/okian/nameprep/internal/config"
	"github.com/okian/nameprep/pkg/logger"
	"github.com/okian/nameprep/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("clean-names: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	var (
		inputFile  = flag.String("input", cfg.InputFile, "source record CSV")
		outputFile = flag.String("output", cfg.OutputFile, "normalized output CSV")
		lookupFile = flag.String("lookup", cfg.LookupFile, "nickname lookup artifact")
		workers    = flag.Int("workers", cfg.WorkerCount, "number of row workers")
	)
	flag.Parse()
	cfg.InputFile = *inputFile
	cfg.OutputFile = *outputFile
	cfg.LookupFile = *lookupFile
	cfg.WorkerCount = *workers

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	stopMetrics := startMetricsServer(ctx, log, cfg.MetricsAddr)
	defer stopMetrics()

	return service.New(cfg, service.WithLogger(log)).Run(ctx)
}

// startMetricsServer serves /metrics while the run is in flight. It returns
// a shutdown func; with an empty addr both are no-ops.
func startMetricsServer(ctx context.Context, log logger.Logger, addr string) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
