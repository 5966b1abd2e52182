package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"olistInsights/app/bootstrap"
	httpMetrics "olistInsights/app/echo-server/metrics"
	"olistInsights/app/echo-server/server"
	"olistInsights/pkg/config"
	"olistInsights/pkg/logger"
	"olistInsights/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Olist Insights API", "version", cfg.App.Version)

	metrics.Init()
	httpMetrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = server.Serve(ctx, cfg, bootstrap.SourceOptions{
		Source:  cfg.Dataset.Source,
		Engine:  cfg.Dataset.Engine,
		DataDir: cfg.Dataset.Dir,
	})
	if err != nil {
		logger.Error("Server error", "error", err)
	}
}
