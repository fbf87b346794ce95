package main

import (
	"context"
	"log"

	"cafe-assistant-be/internal/bootstrap"
	"cafe-assistant-be/internal/config"
	"cafe-assistant-be/internal/server"
	"cafe-assistant-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}

	// 4. Start Background Services
	ctx := context.Background()
	if err := container.RefreshService.Consume(ctx); err != nil {
		log.Panicf("Unable to start catalog refresh consumer: %v", err)
	}
	container.RefreshService.StartTicker(ctx)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
