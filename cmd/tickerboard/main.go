package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tickerboard/internal/adapters/cache/noop"
	"tickerboard/internal/adapters/cache/redis"
	"tickerboard/internal/adapters/storage/postgresql"
	"tickerboard/internal/adapters/storage/sqlite"
	"tickerboard/internal/adapters/web"
	"tickerboard/internal/application/ports"
	"tickerboard/internal/application/usecases"
	"tickerboard/internal/config"
	"tickerboard/internal/logger"
	"tickerboard/internal/scheduler"
)

func main() {
	var (
		port = flag.Int("port", 0, "Port number (overrides configuration)")
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	var storage ports.StoragePort
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		storage, err = postgresql.New(cfg.Database.Postgres)
	default:
		storage, err = sqlite.New(cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Initialize cache
	var cache ports.CachePort
	if cfg.Cache.Enabled {
		cache, err = redis.New(cfg.Cache)
		if err != nil {
			log.Error("Failed to initialize cache", "error", err)
			os.Exit(1)
		}
	} else {
		cache = noop.New()
	}
	defer cache.Close()

	// Initialize use cases
	priceUseCase := usecases.NewPriceUseCase(storage, cache, log)
	headlineUseCase := usecases.NewHeadlineUseCase(storage, log)

	// Initialize snapshot scheduler
	sched := scheduler.New(ctx, priceUseCase, log)
	if err := sched.Register(cfg.Scheduler.RefreshCron); err != nil {
		log.Error("Failed to register scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()
	go sched.RunNow()

	// Initialize web server
	webServer := web.NewServer(cfg.Server.Port, priceUseCase, headlineUseCase, storage, cache, log)

	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("Failed to start web server", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	// Graceful shutdown
	log.Info("Shutting down gracefully...")
	webServer.Shutdown(ctx)
	log.Info("Shutdown complete")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  tickerboard [--port <N>]")
	fmt.Println("  tickerboard --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N     Port number")
}
