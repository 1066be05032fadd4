package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// --- Additional mocks ---

func (m *mockEmbedder) embeds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls
}

// mockCorpus implements driving.CorpusManager with a fixed snapshot.
type mockCorpus struct {
	state domain.CorpusState
	docs  []domain.EmbeddedDocument
}

func (m *mockCorpus) EnsureReady(_ context.Context) error { return nil }

func (m *mockCorpus) Rebuild(_ context.Context) error { return nil }

func (m *mockCorpus) State() domain.CorpusState { return m.state }

func (m *mockCorpus) Snapshot() []domain.EmbeddedDocument { return m.docs }

// mockLLM implements driven.LLMService and records what it was asked.
type mockLLM struct {
	gen              *driven.Generation
	chatErr          error
	calls            int
	lastMessage      string
	lastDocs         []domain.Document
	lastInstructions string
}

func (m *mockLLM) Chat(_ context.Context, message string, docs []domain.Document, instructions string) (*driven.Generation, error) {
	m.calls++
	m.lastMessage = message
	m.lastDocs = docs
	m.lastInstructions = instructions
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	return m.gen, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockQueryLog implements driven.QueryLogStore in memory.
type mockQueryLog struct {
	records   []domain.QueryRecord
	recordErr error
}

func (m *mockQueryLog) Record(_ context.Context, rec domain.QueryRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockQueryLog) Recent(_ context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]domain.QueryRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *mockQueryLog) Close() error { return nil }

// --- Fixtures ---

func readyCorpus() *mockCorpus {
	return &mockCorpus{
		state: domain.CorpusReady,
		docs: []domain.EmbeddedDocument{
			embedded("detailed-tour_jordan", 1, 0, 0, 0),
			embedded("heritage-site_petra", 0.9, 0.1, 0, 0),
			embedded("country-profile_japan", 0, 1, 0, 0),
		},
	}
}

// --- Tests ---

func TestSearch_EmptyPrompt(t *testing.T) {
	embedder := &mockEmbedder{}
	svc := NewQueryService(readyCorpus(), embedder, &mockLLM{}, nil)

	for _, prompt := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), prompt, 3)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, embedder.embeds(), "invalid input must be rejected before any provider call")
}

func TestSearch_CorpusNotReady(t *testing.T) {
	embedder := &mockEmbedder{}

	for _, state := range []domain.CorpusState{
		domain.CorpusUninitialized,
		domain.CorpusBuilding,
		domain.CorpusFailed,
	} {
		svc := NewQueryService(&mockCorpus{state: state}, embedder, &mockLLM{}, nil)
		_, err := svc.Search(context.Background(), "deserts", 3)
		assert.ErrorIs(t, err, domain.ErrNotReady, "state %s", state)
	}
	assert.Zero(t, embedder.embeds())
}

func TestSearch_EmbedFailure(t *testing.T) {
	embedder := &mockEmbedder{embedErr: errors.New("connection refused")}
	svc := NewQueryService(readyCorpus(), embedder, &mockLLM{}, nil)

	_, err := svc.Search(context.Background(), "deserts", 3)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSearch_RanksBySimilarity(t *testing.T) {
	// The mock query vector is [1 0 0 0]; the Jordan tour matches exactly.
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, &mockLLM{}, nil)

	results, err := svc.Search(context.Background(), "deserts of jordan", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "detailed-tour_jordan", results[0].Document.ID)
	assert.Equal(t, "heritage-site_petra", results[1].Document.ID)
}

func TestAnswer_GroundedGeneration(t *testing.T) {
	llm := &mockLLM{gen: &driven.Generation{
		Text:      "Petra is best visited in spring.",
		Citations: []string{"heritage-site_petra"},
	}}
	queryLog := &mockQueryLog{}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, queryLog)

	answer, err := svc.Answer(context.Background(), "When should I visit Petra?")
	require.NoError(t, err)

	assert.Equal(t, "Petra is best visited in spring.", answer.GeneratedText)
	assert.Equal(t, []string{"heritage-site_petra"}, answer.Citations)
	assert.Len(t, answer.Documents, 3, "full corpus is smaller than k, so all of it grounds the answer")

	// The model saw exactly the retrieved documents, in rank order.
	require.Len(t, llm.lastDocs, 3)
	assert.Equal(t, "detailed-tour_jordan", llm.lastDocs[0].ID)
	assert.Equal(t, "When should I visit Petra?", llm.lastMessage)

	// Telemetry recorded the served query.
	require.Len(t, queryLog.records, 1)
	rec := queryLog.records[0]
	assert.Equal(t, "chat", rec.Kind)
	assert.Equal(t, "When should I visit Petra?", rec.Prompt)
	assert.Len(t, rec.DocumentIDs, 3)
	assert.NotEmpty(t, rec.ID)
}

func TestAnswer_LLMFailure(t *testing.T) {
	llm := &mockLLM{chatErr: errors.New("model overloaded")}
	queryLog := &mockQueryLog{}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, queryLog)

	_, err := svc.Answer(context.Background(), "When should I visit Petra?")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, queryLog.records, "failed requests are not telemetry")
}

func TestAnswer_QueryLogFailureDoesNotFailRequest(t *testing.T) {
	llm := &mockLLM{gen: &driven.Generation{Text: "ok"}}
	queryLog := &mockQueryLog{recordErr: errors.New("disk full")}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, queryLog)

	answer, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer.GeneratedText)
}

func TestAnswer_NilQueryLog(t *testing.T) {
	llm := &mockLLM{gen: &driven.Generation{Text: "ok"}}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, nil)

	_, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
}

func TestItinerary(t *testing.T) {
	llm := &mockLLM{gen: &driven.Generation{Text: "Day 1: Amman. Day 2: Petra."}}
	queryLog := &mockQueryLog{}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, queryLog)

	result, err := svc.Itinerary(context.Background(), "5 days in Jordan")
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Amman. Day 2: Petra.", result.Itinerary)

	assert.NotEqual(t, llm.lastInstructions, answerInstructions)
	require.Len(t, queryLog.records, 1)
	assert.Equal(t, "itinerary", queryLog.records[0].Kind)
}

func TestItinerary_EmptyInput(t *testing.T) {
	llm := &mockLLM{}
	svc := NewQueryService(readyCorpus(), &mockEmbedder{}, llm, nil)

	_, err := svc.Itinerary(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, llm.calls)
}
