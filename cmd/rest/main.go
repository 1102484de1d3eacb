package main

import (
	"context"
	"log"

	"one-editor-be/internal/bootstrap"
	"one-editor-be/internal/config"
	"one-editor-be/internal/server"
	"one-editor-be/internal/tracer"
	"one-editor-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start the session-state consumer
	go func() {
		log.Println("Background: Starting Session Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Serve
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
