// Package mcp exposes the context builder to tool-calling agents over the
// Model Context Protocol. The same server backs the stdio binary and the
// streamable HTTP mount of the API server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/services"
)

const (
	ServerName    = "mobility-mcp"
	ServerVersion = "0.1.0"

	LastContextURI = "context/last"
)

type ContextBuilder interface {
	Build(ctx context.Context, req services.BuildRequest) (*domain.ContextPackage, error)
	Ask(ctx context.Context, req services.AskRequest) (services.AskResult, error)
}

type LastPackageReader interface {
	LastPackage() (*domain.ContextPackage, error)
}

// Server wraps the mcp-go server with the tools and resources of this service.
type Server struct {
	mcpServer *mcpserver.MCPServer
	builder   ContextBuilder
	state     LastPackageReader
}

func New(builder ContextBuilder, state LastPackageReader) *Server {
	s := &Server{
		builder: builder,
		state:   state,
	}

	s.mcpServer = mcpserver.NewMCPServer(
		ServerName,
		ServerVersion,
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithToolCapabilities(false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// MCPServer returns the underlying mcp-go server for transport setup.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving newline-delimited JSON-RPC on stdin/stdout.
// Content-Length header framing is not accepted.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}

// HTTPHandler returns the streamable HTTP transport for mounting at /mcp.
func (s *Server) HTTPHandler() *mcpserver.StreamableHTTPServer {
	return mcpserver.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcplib.NewResource(
			LastContextURI,
			"Last Context",
			mcplib.WithResourceDescription("The most recently built context package"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleLastContext,
	)
}

func (s *Server) handleLastContext(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	pkg, err := s.state.LastPackage()
	if err != nil {
		return nil, fmt.Errorf("mcp: read last context: %w", err)
	}

	text := "{}"
	if pkg != nil {
		data, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("mcp: marshal last context: %w", err)
		}
		text = string(data)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      LastContextURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}

// withRequestID gives stdio calls a request ID so their logs correlate like HTTP ones.
func withRequestID(ctx context.Context) context.Context {
	if obs.RequestID(ctx) != "" {
		return ctx
	}
	return obs.WithRequestID(ctx, uuid.NewString())
}

func textResult(texts ...string) *mcplib.CallToolResult {
	content := make([]mcplib.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, mcplib.TextContent{Type: "text", Text: t})
	}
	return &mcplib.CallToolResult{Content: content}
}

func errorResult(ctx context.Context, tool string, err error) *mcplib.CallToolResult {
	log.Printf("req_id=%s tool=%s failed: %v", obs.RequestID(ctx), tool, err)
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: "Tool execution failed: " + err.Error()},
		},
		IsError: true,
	}
}
