package main

import (
	"context"

	"omnimarket/config"
	"omnimarket/internal/monitor"
	"omnimarket/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// run monitor
	if err := monitor.StartMonitor(context.Background(), cfg, log); err != nil {
		log.Fatal("monitor failed", zap.Error(err))
	}

	select {}
}
