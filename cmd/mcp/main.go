package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"mobility-context-service/internal/app"
	"mobility-context-service/internal/config"
	"mobility-context-service/internal/mcp"
	"mobility-context-service/internal/platform/obs"
)

const version = "0.1.0"

// main serves MCP over stdin/stdout. Stdout carries protocol frames only, so logs go to stderr.
// Frames are newline-delimited JSON-RPC messages; Content-Length header framing is not supported,
// so clients that only speak header-framed stdio cannot connect.
func main() {
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	shutdownTracing, err := obs.InitTracing(ctx, cfg.OTELEndpoint, cfg.OTELServiceName, version)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	log.Printf("MCP server ready on stdio mock_mode=%t", cfg.MockMode)
	if err := mcp.New(a.Builder, a.State).ServeStdio(); err != nil {
		log.Printf("mcp stdio: %v", err)
	}
}
