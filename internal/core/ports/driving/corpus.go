package driving

import (
	"context"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// CorpusManager owns the embedded corpus lifecycle.
//
// The build runs once at startup, asynchronously with respect to request
// serving. Readers observe the corpus through State and Snapshot; a request
// arriving before the build completes gets a not-ready condition, never a
// torn or empty corpus presented as valid.
type CorpusManager interface {
	// EnsureReady loads a valid cache or performs a full cold build.
	// A valid cache never triggers re-embedding.
	EnsureReady(ctx context.Context) error

	// Rebuild discards the current snapshot and performs a full cold build,
	// ignoring any cache on disk. The previous snapshot keeps serving until
	// the new one is swapped in.
	Rebuild(ctx context.Context) error

	// State returns the current readiness state.
	State() domain.CorpusState

	// Snapshot returns the complete current corpus, or nil when not Ready.
	// The returned slice is immutable; a rebuild swaps in a new one wholesale.
	Snapshot() []domain.EmbeddedDocument
}
