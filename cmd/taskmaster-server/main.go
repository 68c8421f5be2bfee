package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/taskmaster/internal/cli"
	"github.com/existflow/taskmaster/internal/config"
	"github.com/existflow/taskmaster/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := os.Getenv("PORT")
	addr := cfg.Server.Addr
	if port != "" {
		addr = ":" + port
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Storage.Driver = config.DriverPostgres
		cfg.Storage.DSN = dbURL
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Format = cfg.LogFormat
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Taskmaster server starting on %s", addr)
	if err := cli.Serve(ctx, cfg, addr); err != nil {
		logger.Error("Server failed", logger.F("error", err))
		log.Fatalf("Server failed: %v", err)
	}
}
