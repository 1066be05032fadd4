package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusManager = (*CorpusService)(nil)

// Source is one configured corpus source file.
type Source struct {
	Kind domain.SourceKind
	Path string
}

// CorpusService owns the embedded corpus: it builds the embedding cache on
// cold start, loads it on warm start, and serves immutable snapshots to the
// request path.
//
// The snapshot is replaced wholesale through an atomic pointer. Readers see
// either the old complete set or the new complete set, never a torn state,
// so the request path needs no locking.
type CorpusService struct {
	sources  []Source
	registry driven.NormaliserRegistry
	embedder driven.Embedder
	store    driven.EmbeddingCacheStore

	// buildMu serialises builds; it is never held on the request path.
	buildMu sync.Mutex

	stateMu  sync.RWMutex
	state    domain.CorpusState
	snapshot atomic.Pointer[[]domain.EmbeddedDocument]
}

// NewCorpusService creates a corpus service.
// Sources are processed in the given order on every build, so the document
// sequence (and therefore cache layout) is deterministic.
func NewCorpusService(
	sources []Source,
	registry driven.NormaliserRegistry,
	embedder driven.Embedder,
	store driven.EmbeddingCacheStore,
) *CorpusService {
	return &CorpusService{
		sources:  sources,
		registry: registry,
		embedder: embedder,
		store:    store,
		state:    domain.CorpusUninitialized,
	}
}

// State returns the current readiness state.
func (s *CorpusService) State() domain.CorpusState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Snapshot returns the current corpus, or nil when no build has completed.
func (s *CorpusService) Snapshot() []domain.EmbeddedDocument {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	return *snap
}

// EnsureReady makes the corpus servable: a present-and-valid cache is loaded
// without any embedding call; otherwise a full cold build runs.
func (s *CorpusService) EnsureReady(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if s.State() == domain.CorpusReady {
		return nil
	}
	s.setState(domain.CorpusBuilding)

	docs, err := s.store.Load()
	switch {
	case err == nil:
		logger.Info("Warm start: loaded %d embedded documents from cache", len(docs))
		s.publish(docs)
		return nil
	case errors.Is(err, domain.ErrCacheNotFound):
		logger.Debug("No embedding cache found, building corpus")
	case errors.Is(err, domain.ErrCacheCorrupt):
		logger.Warn("Embedding cache unusable, rebuilding: %v", err)
	default:
		logger.Warn("Embedding cache load failed, rebuilding: %v", err)
	}

	docs, err = s.build(ctx)
	if err != nil {
		s.setState(domain.CorpusFailed)
		return fmt.Errorf("corpus build: %w", err)
	}

	s.publish(docs)
	return nil
}

// Start launches EnsureReady in the background. The server starts accepting
// requests immediately; the query service reports not-ready until the build
// completes.
func (s *CorpusService) Start(ctx context.Context) {
	go func() {
		if err := s.EnsureReady(ctx); err != nil {
			logger.Warn("Corpus build failed: %v", err)
		}
	}()
}

// Rebuild performs a full cold build, ignoring any cache on disk.
//
// While a Ready snapshot exists it keeps serving until the new one is
// swapped in; a failed rebuild leaves the old snapshot and state untouched.
func (s *CorpusService) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	hadSnapshot := s.State() == domain.CorpusReady
	if !hadSnapshot {
		s.setState(domain.CorpusBuilding)
	}

	docs, err := s.build(ctx)
	if err != nil {
		if !hadSnapshot {
			s.setState(domain.CorpusFailed)
		}
		return fmt.Errorf("corpus rebuild: %w", err)
	}

	s.publish(docs)
	return nil
}

// build runs the full pipeline: normalise every configured source, embed the
// document texts, zip vectors back by index and persist the cache.
//
// On embedding failure nothing is persisted and nothing is published: a
// partial cache would break the store-count-equals-ranking-count invariant.
func (s *CorpusService) build(ctx context.Context) ([]domain.EmbeddedDocument, error) {
	docs := s.normaliseAll()
	logger.Info("Normalised %d documents from %d sources", len(docs), len(s.sources))

	if len(docs) == 0 {
		// Every source missing or unparsable. Legal but worth flagging.
		logger.Warn("Corpus is empty: no source produced documents")
		return []domain.EmbeddedDocument{}, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.EmbeddingText()
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d documents",
			domain.ErrUpstream, len(vectors), len(docs))
	}

	embedded := make([]domain.EmbeddedDocument, len(docs))
	for i, doc := range docs {
		embedded[i] = domain.EmbeddedDocument{Document: doc, Embedding: vectors[i]}
	}

	if err := s.store.Save(embedded); err != nil {
		// The in-memory set is complete and servable; losing the cache only
		// costs a re-embed on the next cold start.
		logger.Warn("Failed to persist embedding cache: %v", err)
	}

	return embedded, nil
}

// normaliseAll converts every configured source into documents.
// A single unreadable or unparsable source is skipped with a warning; it
// must never abort the whole corpus build.
func (s *CorpusService) normaliseAll() []domain.Document {
	var docs []domain.Document
	for _, src := range s.sources {
		normaliser, err := s.registry.Get(src.Kind)
		if err != nil {
			logger.Warn("Source %s: %v, skipping", src.Path, err)
			continue
		}

		data, err := os.ReadFile(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Source %s missing, skipping", src.Path)
			} else {
				logger.Warn("Source %s unreadable: %v, skipping", src.Path, err)
			}
			continue
		}

		sourceDocs, err := normaliser.Normalise(data)
		if err != nil {
			logger.Warn("Source %s unparsable: %v, skipping", src.Path, err)
			continue
		}

		docs = append(docs, sourceDocs...)
	}
	return docs
}

func (s *CorpusService) publish(docs []domain.EmbeddedDocument) {
	s.snapshot.Store(&docs)
	s.setState(domain.CorpusReady)
}

func (s *CorpusService) setState(state domain.CorpusState) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
	logger.Debug("Corpus state: %s", state)
}
