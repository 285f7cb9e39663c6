package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alexanderramin/shutterflow/internal/cli"
	"github.com/alexanderramin/shutterflow/internal/config"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"github.com/alexanderramin/shutterflow/internal/logging"
	"github.com/alexanderramin/shutterflow/internal/media"
	"github.com/alexanderramin/shutterflow/internal/service"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	baseDir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	configPath := os.Getenv("SHUTTERFLOW_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(baseDir, "config.yaml")
	}
	cfg, err := config.Load(configPath, baseDir)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
	}
	defer backend.Close()

	st := store.New(backend, store.WithLogger(logger))
	st.Initialize(ctx)

	registry := prometheus.NewRegistry()
	metrics, err := service.NewPrometheusObserver(registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	observer := service.MultiObserver(service.NewLogUseCaseObserver(logger), metrics)

	status := service.NewStatusService(st)
	app := &cli.App{
		Store: st,
		Transfer: service.NewTransferService(st, service.TransferConfig{
			AppVersion: version,
			ExportedBy: cfg.Export.ExportedBy,
		}, observer),
		Reports:   service.NewReportService(st, observer),
		QuickCalc: service.NewQuickCalcService(st, observer),
		Status:    status,

		Media:     media.Options{MaxDimension: cfg.Media.MaxDimension, Quality: cfg.Media.JPEGQuality},
		ExportDir: cfg.Export.Dir,

		StorageDriver:   cfg.Storage.Driver,
		StorageLocation: storageLocation(cfg.Storage),

		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Version:     version,
	}

	runErr := cli.NewRootCmd(app).ExecuteContext(ctx)

	if cfg.Metrics.Textfile != "" {
		if err := service.WriteMetricsTextfile(cfg.Metrics.Textfile, registry); err != nil {
			logger.Warn("writing metrics textfile failed", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
		}
	}
	return runErr
}

func storageLocation(c config.StorageConfig) string {
	switch c.Driver {
	case config.DriverMemory:
		return "(process memory)"
	case config.DriverRedis:
		return fmt.Sprintf("redis://%s/%d %s*", c.RedisAddr, c.RedisDB, c.KeyPrefix)
	case config.DriverPostgres:
		return "postgres " + c.KeyPrefix + "*"
	default:
		return c.Path
	}
}
