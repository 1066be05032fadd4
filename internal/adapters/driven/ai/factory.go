// Package ai provides factory functions for creating AI service adapters
// from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarer-labs/wayfarer/internal/adapters/driven/embedding"
	ollamaembed "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/llm/ollama"
	openaillm "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/llm/openai"
	"github.com/wayfarer-labs/wayfarer/internal/config"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbedder builds the configured embedding provider client and wraps
// it with request-size batching and rate pacing.
func CreateEmbedder(cfg config.EmbeddingConfig) (driven.Embedder, error) {
	var (
		inner driven.Embedder
		err   error
	)

	switch cfg.Provider {
	case "openai":
		inner, err = openaiembed.New(openaiembed.Config{
			APIKey:     cfg.APIKey(),
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, err
		}
	case "ollama":
		inner = ollamaembed.New(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
			Dimensions: cfg.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}

	return embedding.NewPacedEmbedder(
		inner,
		cfg.BatchSize,
		time.Duration(cfg.PaceSecs)*time.Second,
	), nil
}

// CreateLLM builds the configured generation provider client.
func CreateLLM(cfg config.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "openai":
		return openaillm.New(openaillm.Config{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		})
	case "ollama":
		return ollamallm.New(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// CreateAndValidateEmbedder creates the embedder and validates connectivity.
func CreateAndValidateEmbedder(cfg config.EmbeddingConfig) (driven.Embedder, error) {
	svc, err := CreateEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding provider unreachable: %w", err)
	}

	return svc, nil
}

// CreateAndValidateLLM creates the generation service and validates connectivity.
func CreateAndValidateLLM(cfg config.LLMConfig) (driven.LLMService, error) {
	svc, err := CreateLLM(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("generation provider unreachable: %w", err)
	}

	return svc, nil
}
