// Package mcp exposes travel retrieval and answering as MCP tools, so AI
// agents can query the corpus over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
)

// Server wraps the MCP server with the query service.
type Server struct {
	mcp   *gomcp.Server
	query driving.QueryService
}

// NewServer creates an MCP server exposing the travel tools.
func NewServer(query driving.QueryService) (*Server, error) {
	if query == nil {
		return nil, fmt.Errorf("query service is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "wayfarer",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:   mcpServer,
		query: query,
	}
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "travel_search",
		Description: "Search the travel corpus and return the most relevant documents for a query.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Free-text travel query"},
				"k": {"type": "number", "description": "Maximum number of documents (default 5)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearch)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "travel_answer",
		Description: "Answer a travel question grounded on the corpus, with citations.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"prompt": {"type": "string", "description": "The travel question to answer"}
			},
			"required": ["prompt"]
		}`),
	}, s.handleAnswer)
}

func toolError(format string, args ...any) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolText(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}
