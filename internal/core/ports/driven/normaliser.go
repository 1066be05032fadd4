package driven

import "github.com/wayfarer-labs/wayfarer/internal/core/domain"

// Normaliser converts the raw bytes of one corpus source file into documents.
// Each normaliser handles exactly one source kind.
//
// Normalisation is a pure mapping: absent optional fields degrade to empty
// strings, and re-running over unchanged bytes yields byte-identical output.
type Normaliser interface {
	// Kind returns the source kind this normaliser handles.
	Kind() domain.SourceKind

	// Normalise parses the source file content and returns its documents.
	// An unparsable file returns an error and zero documents; the caller
	// skips that source and continues with the rest of the corpus.
	Normalise(data []byte) ([]domain.Document, error)
}

// NormaliserRegistry resolves a normaliser for a source kind.
type NormaliserRegistry interface {
	// Get returns the normaliser for kind, or domain.ErrUnsupportedSource.
	Get(kind domain.SourceKind) (Normaliser, error)
}
