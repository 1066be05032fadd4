package driven

import (
	"context"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// QueryLogStore records served queries for operator telemetry.
// This is observability state, not retrieval state: losing it never
// affects answers, and write failures must not fail the request.
type QueryLogStore interface {
	// Record appends one served query.
	Record(ctx context.Context, rec domain.QueryRecord) error

	// Recent returns the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Close releases resources.
	Close() error
}
