package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or missing request input.
	// Rejected before any external call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates the corpus has not finished building.
	// Callers should retry later; this is not an empty-result success.
	ErrNotReady = errors.New("corpus not ready")

	// ErrCacheNotFound indicates no embedding cache exists yet (first run).
	ErrCacheNotFound = errors.New("embedding cache not found")

	// ErrCacheCorrupt indicates the stored cache could not be parsed or
	// holds inconsistent data. Treated as absent, forcing a full rebuild.
	ErrCacheCorrupt = errors.New("embedding cache corrupt")

	// ErrDimensionMismatch indicates a query vector's dimensionality does
	// not match the corpus. Never silently coerced.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUpstream indicates the embedding or generation provider failed.
	ErrUpstream = errors.New("upstream provider failure")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedSource indicates an unknown corpus source kind.
	ErrUnsupportedSource = errors.New("unsupported source kind")
)

// BatchError reports an embedding provider failure mid-run with enough
// context to tell which batch failed and how much work was already done.
type BatchError struct {
	// Batch is the zero-based index of the failed batch.
	Batch int

	// Done is the number of texts embedded before the failure.
	Done int

	// Err is the underlying provider error.
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("embedding batch %d failed after %d texts: %v", e.Batch, e.Done, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
