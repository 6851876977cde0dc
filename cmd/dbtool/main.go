package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"mobility-context-service/internal/adapters/cache"
	"mobility-context-service/internal/config"
	"mobility-context-service/internal/platform/db"
)

// main creates the Postgres geocode-cache schema ahead of the first server start.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing geocode cache schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
