package main

import (
	"fmt"

	"github.com/wayfarer-labs/wayfarer/internal/adapters/driven/ai"
	cachefile "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/cache/file"
	querylogsqlite "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/querylog/sqlite"
	"github.com/wayfarer-labs/wayfarer/internal/config"
	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
	"github.com/wayfarer-labs/wayfarer/internal/core/services"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
	"github.com/wayfarer-labs/wayfarer/internal/normalisers"
)

// app holds the wired services for one process.
type app struct {
	corpus   *services.CorpusService
	query    *services.QueryService
	auth     *services.AuthService
	embedder driven.Embedder
	llm      driven.LLMService
	queryLog driven.QueryLogStore
}

// buildApp wires adapters and services from configuration.
func buildApp(cfg *config.Config) (*app, error) {
	embedder, err := ai.CreateEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	llm, err := ai.CreateLLM(cfg.LLM)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("create llm: %w", err)
	}

	cache, err := cachefile.NewStore(cfg.CachePath())
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, fmt.Errorf("create cache store: %w", err)
	}

	// Query telemetry is best-effort: a broken log database must not keep
	// the service from starting.
	var queryLog driven.QueryLogStore
	if qls, err := querylogsqlite.NewStore(cfg.QueryLogPath()); err != nil {
		logger.Warn("Query log disabled: %v", err)
	} else {
		queryLog = qls
	}

	var sources []services.Source
	for _, src := range cfg.Sources {
		kind := domain.SourceKind(src.Kind)
		if !kind.Valid() {
			logger.Warn("Ignoring unknown source kind %q (%s)", src.Kind, src.Path)
			continue
		}
		sources = append(sources, services.Source{Kind: kind, Path: src.Path})
	}

	corpus := services.NewCorpusService(sources, normalisers.NewRegistry(), embedder, cache)

	var creds []services.Credential
	for _, c := range cfg.Credentials {
		creds = append(creds, services.Credential{Email: c.Email, Password: c.Password})
	}

	return &app{
		corpus:   corpus,
		query:    services.NewQueryService(corpus, embedder, llm, queryLog),
		auth:     services.NewAuthService(creds),
		embedder: embedder,
		llm:      llm,
		queryLog: queryLog,
	}, nil
}

// Close releases all adapter resources.
func (a *app) Close() {
	a.embedder.Close()
	a.llm.Close()
	if a.queryLog != nil {
		a.queryLog.Close()
	}
}
