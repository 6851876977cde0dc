package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mobility-context-service/internal/api"
	"mobility-context-service/internal/app"
	"mobility-context-service/internal/config"
	"mobility-context-service/internal/mcp"
	"mobility-context-service/internal/platform/obs"
)

const version = "0.1.0"

// main is the HTTP composition root: REST endpoints plus the MCP streamable HTTP transport.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := obs.InitTracing(ctx, cfg.OTELEndpoint, cfg.OTELServiceName, version)
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	mcpServer := mcp.New(a.Builder, a.State)
	router := api.NewRouter(api.Deps{
		Builder:  a.Builder,
		State:    a.State,
		MockMode: cfg.MockMode,
		MCP:      mcpServer.HTTPHandler(),
	})

	// Write timeout covers a full fan-out of collaborator calls, each bounded by REQUEST_TIMEOUT.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s mock_mode=%t", cfg.Port, cfg.MockMode)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
