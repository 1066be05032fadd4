package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

type searchArgs struct {
	Query string  `json:"query"`
	K     float64 `json:"k"`
}

type answerArgs struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleSearch(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args searchArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return toolError("query is required"), nil
	}

	results, err := s.query.Search(ctx, args.Query, int(args.K))
	if err != nil {
		return domainToolError(err), nil
	}
	if len(results) == 0 {
		return toolText("No matching travel documents found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d travel documents:\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s (score %.3f, id %s)\n%s\n", i+1, r.Document.Title, r.Score, r.Document.ID, r.Document.Text)
	}
	return toolText(b.String()), nil
}

func (s *Server) handleAnswer(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args answerArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Prompt) == "" {
		return toolError("prompt is required"), nil
	}

	answer, err := s.query.Answer(ctx, args.Prompt)
	if err != nil {
		return domainToolError(err), nil
	}

	var b strings.Builder
	b.WriteString(answer.GeneratedText)
	if len(answer.Citations) > 0 {
		b.WriteString("\n\nSources: ")
		b.WriteString(strings.Join(answer.Citations, "; "))
	}
	return toolText(b.String()), nil
}

// domainToolError keeps the error taxonomy discriminable for agents.
func domainToolError(err error) *gomcp.CallToolResult {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return toolError("invalid input: %v", err)
	case errors.Is(err, domain.ErrNotReady):
		return toolError("the travel corpus is still building, try again shortly")
	case errors.Is(err, domain.ErrUpstream):
		return toolError("upstream provider failed: %v", err)
	default:
		return toolError("request failed: %v", err)
	}
}
