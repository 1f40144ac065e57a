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
	ctx := context.Background()

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

	go func() {
		if err := app.API.Handler.StartServer(cfg.App.Port); err != nil {
			lg.Error(err)
			os.Exit(1)
		}
	}()

	lg.Info("query server started",
		logger.NewField("app", cfg.App.Name),
		logger.NewField("environment", cfg.App.Environment),
		logger.NewField("http_port", cfg.App.Port),
		logger.NewField("metrics_port", cfg.App.MetricsPort),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("query server shutting down")
}
