package driven

import "github.com/wayfarer-labs/wayfarer/internal/core/domain"

// EmbeddingCacheStore persists the embedded corpus durably between runs.
//
// The cache is one serialized collection, written and loaded wholesale.
// It is never patched record-by-record: a forced refresh rebuilds it in full.
type EmbeddingCacheStore interface {
	// Save atomically persists the complete embedded document set.
	Save(docs []domain.EmbeddedDocument) error

	// Load returns the persisted set. It distinguishes three outcomes:
	// present-and-valid (docs, nil), absent (domain.ErrCacheNotFound) and
	// present-but-corrupt (domain.ErrCacheCorrupt). A corrupt cache must
	// trigger a rebuild, never serve a partial set.
	Load() ([]domain.EmbeddedDocument, error)

	// Exists reports whether a cache file is present, without parsing it.
	Exists() bool
}
