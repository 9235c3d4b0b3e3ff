package main

import (
	"log"

	"github.com/grocerly/backend/config"
	"github.com/grocerly/backend/internal/database"
	"github.com/grocerly/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis is optional: without it the server runs with caching and rate
	// limiting disabled.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
