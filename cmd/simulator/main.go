package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"smartgrid/internal/client"
	"smartgrid/internal/config"
	"smartgrid/internal/sim"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML simulation config (optional)")
	endpoint := flag.String("endpoint", "", "Grid API endpoint (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *endpoint != "" {
		cfg.API.Endpoint = *endpoint
	}

	api := client.New(cfg.API.Endpoint)
	engine := sim.NewEngine(cfg, api)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if d := cfg.Simulation.Duration(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Fatalf("Simulation failed: %v", err)
	}
}
