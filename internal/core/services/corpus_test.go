package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachefile "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/cache/file"
	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/normalisers"
)

// --- Mock implementations ---

// mockEmbedder implements driven.Embedder for testing.
type mockEmbedder struct {
	mu         sync.Mutex
	batchCalls int
	embedCalls int
	dims       int
	embedErr   error
}

func (m *mockEmbedder) vector() []float32 {
	dims := m.dims
	if dims == 0 {
		dims = 4
	}
	v := make([]float32, dims)
	v[0] = 1
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.vector()
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 4
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

func (m *mockEmbedder) batches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCalls
}

// --- Test fixtures ---

const toursJSON = `[
	{"name": "Highlights of Jordan", "country": "Jordan", "description": "Petra and Wadi Rum."},
	{"name": "Kyoto Classics", "country": "Japan", "description": "Temples and gardens."}
]`

const sitesJSON = `[
	{"site": "Petra", "country": "Jordan", "short_description": "<p>Rock-cut <b>capital</b></p>", "unesco_listed": true}
]`

// writeSources writes the standard two test source files and returns the
// corpus sources plus a cache store rooted in the same temp dir.
func corpusFixture(t *testing.T) ([]Source, *cachefile.Store, string) {
	t.Helper()
	dir := t.TempDir()

	toursPath := filepath.Join(dir, "detailed_tours.json")
	require.NoError(t, os.WriteFile(toursPath, []byte(toursJSON), 0600))
	sitesPath := filepath.Join(dir, "heritage_sites.json")
	require.NoError(t, os.WriteFile(sitesPath, []byte(sitesJSON), 0600))

	sources := []Source{
		{Kind: domain.SourceDetailedTour, Path: toursPath},
		{Kind: domain.SourceHeritageSite, Path: sitesPath},
	}

	store, err := cachefile.NewStore(filepath.Join(dir, "embeddings.json"))
	require.NoError(t, err)

	return sources, store, dir
}

// --- Tests ---

func TestEnsureReady_ColdStart(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	embedder := &mockEmbedder{}

	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)
	require.Equal(t, domain.CorpusUninitialized, svc.State())

	require.NoError(t, svc.EnsureReady(context.Background()))

	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Len(t, svc.Snapshot(), 3)
	assert.Equal(t, 1, embedder.batches())

	// The persisted cache holds exactly the documents used for ranking.
	cached, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestEnsureReady_WarmStart_NoEmbeddingCalls(t *testing.T) {
	sources, store, _ := corpusFixture(t)

	require.NoError(t, store.Save([]domain.EmbeddedDocument{
		{Document: domain.Document{ID: "detailed-tour_x", Title: "X"}, Embedding: []float32{1, 0}},
		{Document: domain.Document{ID: "detailed-tour_y", Title: "Y"}, Embedding: []float32{0, 1}},
	}))

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.EnsureReady(context.Background()))

	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Len(t, svc.Snapshot(), 2)
	assert.Zero(t, embedder.batches(), "a valid cache must never trigger re-embedding")
}

func TestEnsureReady_CorruptCache_Rebuilds(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{truncated"), 0600))

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.EnsureReady(context.Background()))

	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Len(t, svc.Snapshot(), 3)
	assert.Equal(t, 1, embedder.batches())

	// The corrupt file was replaced by a valid one.
	cached, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestEnsureReady_EmptySetCacheFileRebuilds(t *testing.T) {
	// A cache file holding zero records is tampering or truncation, never
	// a build product. It must trigger a rebuild, not publish Ready over
	// an empty corpus.
	sources, store, _ := corpusFixture(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[]"), 0600))

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.EnsureReady(context.Background()))

	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Len(t, svc.Snapshot(), 3)
	assert.Equal(t, 1, embedder.batches())
}

func TestEnsureReady_MissingSourceSkipped(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	sources = append(sources, Source{
		Kind: domain.SourceCountryProfile,
		Path: filepath.Join(t.TempDir(), "nope.json"),
	})

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.EnsureReady(context.Background()))
	assert.Len(t, svc.Snapshot(), 3)
}

func TestEnsureReady_UnparsableSourceSkipped(t *testing.T) {
	sources, store, dir := corpusFixture(t)

	badPath := filepath.Join(dir, "country_profiles.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not json at all"), 0600))
	sources = append(sources, Source{Kind: domain.SourceCountryProfile, Path: badPath})

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	// One bad source must not abort the whole build.
	require.NoError(t, svc.EnsureReady(context.Background()))
	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Len(t, svc.Snapshot(), 3)
}

func TestEnsureReady_EmbedFailure_NoCacheWritten(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	embedder := &mockEmbedder{embedErr: errors.New("quota exceeded")}

	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	err := svc.EnsureReady(context.Background())
	require.Error(t, err)

	assert.Equal(t, domain.CorpusFailed, svc.State())
	assert.Nil(t, svc.Snapshot())
	assert.False(t, store.Exists(), "a failed build must not persist a partial cache")
}

func TestEnsureReady_AlreadyReady_NoWork(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	embedder := &mockEmbedder{}

	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)
	require.NoError(t, svc.EnsureReady(context.Background()))
	require.NoError(t, svc.EnsureReady(context.Background()))

	assert.Equal(t, 1, embedder.batches())
}

func TestRebuild_IgnoresCache(t *testing.T) {
	sources, store, _ := corpusFixture(t)

	require.NoError(t, store.Save([]domain.EmbeddedDocument{
		{Document: domain.Document{ID: "stale", Title: "Stale"}, Embedding: []float32{1}},
	}))

	embedder := &mockEmbedder{}
	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.Rebuild(context.Background()))

	assert.Equal(t, 1, embedder.batches())
	assert.Len(t, svc.Snapshot(), 3)
}

func TestRebuild_FailureKeepsServingOldSnapshot(t *testing.T) {
	sources, store, _ := corpusFixture(t)
	embedder := &mockEmbedder{}

	svc := NewCorpusService(sources, normalisers.NewRegistry(), embedder, store)
	require.NoError(t, svc.EnsureReady(context.Background()))
	old := svc.Snapshot()

	embedder.embedErr = errors.New("provider down")
	err := svc.Rebuild(context.Background())
	require.Error(t, err)

	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Equal(t, old, svc.Snapshot())
}

func TestEnsureReady_EmptyCorpusIsServable(t *testing.T) {
	dir := t.TempDir()
	store, err := cachefile.NewStore(filepath.Join(dir, "embeddings.json"))
	require.NoError(t, err)

	embedder := &mockEmbedder{}
	svc := NewCorpusService(nil, normalisers.NewRegistry(), embedder, store)

	require.NoError(t, svc.EnsureReady(context.Background()))
	assert.Equal(t, domain.CorpusReady, svc.State())
	assert.Empty(t, svc.Snapshot())
	assert.Zero(t, embedder.batches())
}
