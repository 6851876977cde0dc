package api

import (
	"net/http"

	"mobility-context-service/internal/api/handlers"
)

// Deps carries everything the HTTP front-end needs. MCP may be nil.
type Deps struct {
	Builder  handlers.ContextBuilder
	State    RuntimeState
	MockMode bool
	MCP      http.Handler
}

type RuntimeState interface {
	handlers.HomeStore
	handlers.LastPackageReader
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{MockMode: d.MockMode}
	home := &handlers.HomeHandler{State: d.State}
	ctxHandler := &handlers.ContextHandler{Builder: d.Builder, State: d.State}

	mux.HandleFunc("/health", health.Health)
	mux.HandleFunc("/config/home", home.SetHome)
	mux.HandleFunc("/context/last", ctxHandler.Last)
	mux.HandleFunc("/build_context", ctxHandler.Build)
	mux.HandleFunc("/ask", ctxHandler.Ask)
	if d.MCP != nil {
		mux.Handle("/mcp", d.MCP)
	}

	return corsMiddleware(requestIDMiddleware(loggingMiddleware(mux)))
}
