package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"mobility-context-service/internal/services"
)

var (
	errQuestionRequired = errors.New("question is required")
	errNegativeBuffer   = errors.New("buffer_minutes must be >= 0")
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcplib.NewTool("ask",
			mcplib.WithDescription("Accessibility-first: how to reach next meeting. Returns a concise answer."),
			mcplib.WithReadOnlyHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(true),
			mcplib.WithString("question",
				mcplib.Description("What the user wants to know about the trip"),
				mcplib.Required(),
			),
			mcplib.WithString("origin",
				mcplib.Description("Starting address; defaults to the configured home address"),
			),
			mcplib.WithNumber("buffer_minutes",
				mcplib.Description("Safety margin added to travel time"),
				mcplib.Min(0),
				mcplib.DefaultNumber(services.DefaultBufferMinutes),
			),
		),
		s.handleAsk,
	)

	s.mcpServer.AddTool(
		mcplib.NewTool("build_context",
			mcplib.WithDescription("Build the full context package (JSON string)."),
			mcplib.WithReadOnlyHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(true),
			mcplib.WithString("origin",
				mcplib.Description("Starting address; defaults to the configured home address"),
			),
			mcplib.WithNumber("buffer_minutes",
				mcplib.Description("Safety margin added to travel time"),
				mcplib.Min(0),
				mcplib.DefaultNumber(services.DefaultBufferMinutes),
			),
		),
		s.handleBuildContext,
	)
}

func (s *Server) handleAsk(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ctx = withRequestID(ctx)

	question := strings.TrimSpace(request.GetString("question", ""))
	if question == "" {
		return errorResult(ctx, "ask", errQuestionRequired), nil
	}
	buffer := request.GetInt("buffer_minutes", services.DefaultBufferMinutes)
	if buffer < 0 {
		return errorResult(ctx, "ask", errNegativeBuffer), nil
	}

	res, err := s.builder.Ask(ctx, services.AskRequest{
		Question:      question,
		Origin:        request.GetString("origin", ""),
		BufferMinutes: buffer,
	})
	if err != nil {
		return errorResult(ctx, "ask", err), nil
	}

	data, err := json.Marshal(map[string]any{"context": res.Context})
	if err != nil {
		return errorResult(ctx, "ask", fmt.Errorf("marshal context: %w", err)), nil
	}
	return textResult(res.Answer, string(data)), nil
}

// handleBuildContext always targets the next calendar event.
func (s *Server) handleBuildContext(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ctx = withRequestID(ctx)

	buffer := request.GetInt("buffer_minutes", services.DefaultBufferMinutes)
	if buffer < 0 {
		return errorResult(ctx, "build_context", errNegativeBuffer), nil
	}

	pkg, err := s.builder.Build(ctx, services.BuildRequest{
		UseNextEvent:  true,
		Origin:        request.GetString("origin", ""),
		BufferMinutes: buffer,
	})
	if err != nil {
		return errorResult(ctx, "build_context", err), nil
	}

	data, err := json.Marshal(pkg)
	if err != nil {
		return errorResult(ctx, "build_context", fmt.Errorf("marshal package: %w", err)), nil
	}
	return textResult(string(data)), nil
}
