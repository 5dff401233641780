package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/aggregate"
	"github.com/prestomation/calendar-ripper-sub001/internal/config"
	"github.com/prestomation/calendar-ripper-sub001/internal/feed"
	"github.com/prestomation/calendar-ripper-sub001/internal/ics"
	"github.com/prestomation/calendar-ripper-sub001/internal/pipeline"
	"github.com/prestomation/calendar-ripper-sub001/internal/ripper"
	"github.com/prestomation/calendar-ripper-sub001/internal/ripper/veezi"
	"github.com/prestomation/calendar-ripper-sub001/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outputDir := flag.String("out", "", "output directory (overrides config)")
	interval := flag.Duration("interval", 0, "re-run generation on this interval (0 = run once)")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	logger = setupLogger(cfg.LogLevel)

	registry := ripper.NewRegistry()
	registry.Register(veezi.New(veezi.Config{Timeout: cfg.Fetch.Timeout}, logger))

	fetcher := ics.NewFetcher(cfg.Fetch.Timeout, logger)
	engine := aggregate.NewEngine(fetcher, logger)

	writer, err := feed.NewWriter(cfg.OutputDir, logger)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(1)
	}

	service := pipeline.NewService(cfg, registry, engine, writer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *interval > 0 {
		sched := scheduler.NewScheduler(service, *interval, logger)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
			os.Exit(1)
		}
		return
	}

	runCtx, runCancel := context.WithTimeout(ctx, 10*time.Minute)
	defer runCancel()

	if _, err := service.Run(runCtx); err != nil {
		logger.Error("generation run failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
