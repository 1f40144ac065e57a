package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/bootstrap"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/metrics"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/questdb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		lg.Error(err)
		os.Exit(1)
	}
	defer questdbClient.Close()

	b := bootstrap.Bootstrap{}
	app := b.Init(bootstrap.BootstrapConfig{
		QuestDB: questdbClient,
		Logger:  lg,
		Config:  cfg,
	})

	metricsServer := metrics.Serve(fmt.Sprintf(":%d", cfg.App.MetricsPort))
	defer metricsServer.Close()

	lg.Info("collector started",
		logger.NewField("app", cfg.App.Name),
		logger.NewField("feed_url", cfg.Feed.URL),
		logger.NewField("symbols", cfg.Feed.Symbols),
	)

	if err := app.Collector.Gateway.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error(err)
		os.Exit(1)
	}

	lg.Info("collector stopped")
}
