package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"agridata/config"
	"agridata/simulator"
)

func main() {
	cfg := config.LoadSimulator()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer := simulator.NewProducer(cfg.ServerURL, simulator.DefaultFleet)
	if err := producer.WaitReady(ctx); err != nil {
		log.Printf("simulator: server not reachable yet, starting anyway: %v", err)
	}

	log.Printf("simulator: posting to %s every %ds", cfg.ServerURL, cfg.IntervalSeconds)
	producer.Run(ctx, time.Duration(cfg.IntervalSeconds)*time.Second)
	log.Println("simulator: stopped")
}
