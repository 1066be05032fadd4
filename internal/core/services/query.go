package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Generation instructions per operation.
const (
	answerInstructions = "You are a travel assistant. Answer the question using only the " +
		"provided travel documents. Cite the documents you draw on by title. " +
		"If the documents do not cover the question, say so."

	itineraryInstructions = "You are a travel planner. Build a day-by-day itinerary from the " +
		"user's request, grounded on the provided travel documents. Keep it " +
		"practical: seasons, durations and regions must match the documents."
)

// QueryService answers travel queries against the embedded corpus.
type QueryService struct {
	corpus   driving.CorpusManager
	embedder driven.Embedder
	llm      driven.LLMService
	queryLog driven.QueryLogStore // optional, nil disables telemetry
}

// NewQueryService creates a query service.
// The queryLog is optional; pass nil to disable query telemetry.
func NewQueryService(
	corpus driving.CorpusManager,
	embedder driven.Embedder,
	llm driven.LLMService,
	queryLog driven.QueryLogStore,
) *QueryService {
	return &QueryService{
		corpus:   corpus,
		embedder: embedder,
		llm:      llm,
		queryLog: queryLog,
	}
}

// Answer embeds the prompt, retrieves the top documents and generates a
// grounded response.
func (s *QueryService) Answer(ctx context.Context, prompt string) (*domain.Answer, error) {
	start := time.Now()

	results, err := s.Search(ctx, prompt, ChatTopK)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(results))
	for i, r := range results {
		docs[i] = r.Document
	}

	gen, err := s.llm.Chat(ctx, prompt, docs, answerInstructions)
	if err != nil {
		return nil, fmt.Errorf("%w: generation: %w", domain.ErrUpstream, err)
	}

	s.record(ctx, "chat", prompt, docs, time.Since(start))

	return &domain.Answer{
		Documents:     docs,
		GeneratedText: gen.Text,
		Citations:     gen.Citations,
	}, nil
}

// Itinerary generates a grounded day-by-day itinerary from user input.
func (s *QueryService) Itinerary(ctx context.Context, userInput string) (*domain.ItineraryResult, error) {
	start := time.Now()

	results, err := s.Search(ctx, userInput, DefaultTopK)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(results))
	for i, r := range results {
		docs[i] = r.Document
	}

	gen, err := s.llm.Chat(ctx, userInput, docs, itineraryInstructions)
	if err != nil {
		return nil, fmt.Errorf("%w: generation: %w", domain.ErrUpstream, err)
	}

	s.record(ctx, "itinerary", userInput, docs, time.Since(start))

	return &domain.ItineraryResult{Itinerary: gen.Text}, nil
}

// Search embeds the prompt and returns the top-k most similar documents.
//
// Input is validated before any provider call; a not-ready corpus is a
// distinct condition, never an empty-result success.
func (s *QueryService) Search(ctx context.Context, prompt string, k int) ([]domain.SearchResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidInput)
	}

	if s.corpus.State() != domain.CorpusReady {
		return nil, fmt.Errorf("%w: state %s", domain.ErrNotReady, s.corpus.State())
	}
	corpus := s.corpus.Snapshot()

	queryVec, err := s.embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %w", domain.ErrUpstream, err)
	}

	results, err := TopK(queryVec, corpus, k)
	if err != nil {
		return nil, err
	}

	logger.Debug("Retrieved %d documents for query (k=%d)", len(results), k)
	return results, nil
}

// record writes query telemetry. Failures are logged, never surfaced: the
// log is operator state, not part of the answer.
func (s *QueryService) record(ctx context.Context, kind, prompt string, docs []domain.Document, latency time.Duration) {
	if s.queryLog == nil {
		return
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	rec := domain.QueryRecord{
		ID:          uuid.New().String(),
		Kind:        kind,
		Prompt:      prompt,
		DocumentIDs: ids,
		Latency:     latency,
		CreatedAt:   time.Now(),
	}
	if err := s.queryLog.Record(ctx, rec); err != nil {
		logger.Warn("Query log write failed: %v", err)
	}
}
