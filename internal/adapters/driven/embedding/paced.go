// Package embedding provides the pacing/batching wrapper placed in front of
// raw embedding provider clients.
package embedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// Ensure PacedEmbedder implements the interface.
var _ driven.Embedder = (*PacedEmbedder)(nil)

// Default pacing values, sized for hosted embedding APIs.
const (
	// DefaultBatchSize caps texts per provider request.
	DefaultBatchSize = 96

	// DefaultPaceInterval is the mandatory wait between successive batch
	// submissions within one EmbedBatch call.
	DefaultPaceInterval = 10 * time.Second
)

// PacedEmbedder wraps a provider client with request-size batching and rate
// pacing. An arbitrarily long input is split into batches of at most
// batchSize texts; successive batches are spaced by at least interval, even
// when the prior batch returned instantly.
//
// Each EmbedBatch call runs its own pacing sequence: the first batch goes
// out immediately, so a single-text query is never delayed by pacing.
type PacedEmbedder struct {
	inner     driven.Embedder
	batchSize int
	interval  time.Duration
}

// NewPacedEmbedder wraps inner with batching and pacing.
// Non-positive batchSize or interval fall back to the defaults.
func NewPacedEmbedder(inner driven.Embedder, batchSize int, interval time.Duration) *PacedEmbedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	return &PacedEmbedder{
		inner:     inner,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Embed generates an embedding for a single text (a batch of one).
func (p *PacedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts, preserving input order index-for-index.
//
// On a provider failure it returns a *domain.BatchError naming the failed
// batch and how many texts were already embedded; no partial vector set is
// ever returned.
func (p *PacedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	// Burst 1: the first Wait passes immediately, every later Wait is
	// spaced by the pacing interval.
	limiter := rate.NewLimiter(rate.Every(p.interval), 1)

	batches := (len(texts) + p.batchSize - 1) / p.batchSize
	vectors := make([][]float32, 0, len(texts))

	for batch := 0; batch < batches; batch++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &domain.BatchError{Batch: batch, Done: len(vectors), Err: err}
		}

		lo := batch * p.batchSize
		hi := min(lo+p.batchSize, len(texts))

		logger.Debug("Embedding batch %d/%d (%d texts)", batch+1, batches, hi-lo)
		batchVectors, err := p.inner.EmbedBatch(ctx, texts[lo:hi])
		if err != nil {
			return nil, &domain.BatchError{Batch: batch, Done: len(vectors), Err: err}
		}
		if len(batchVectors) != hi-lo {
			return nil, &domain.BatchError{
				Batch: batch,
				Done:  len(vectors),
				Err:   fmt.Errorf("provider returned %d vectors for %d texts", len(batchVectors), hi-lo),
			}
		}

		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}

// Dimensions returns the underlying model's vector size.
func (p *PacedEmbedder) Dimensions() int {
	return p.inner.Dimensions()
}

// ModelName returns the underlying model name.
func (p *PacedEmbedder) ModelName() string {
	return p.inner.ModelName()
}

// Ping validates the underlying provider is reachable.
func (p *PacedEmbedder) Ping(ctx context.Context) error {
	return p.inner.Ping(ctx)
}

// Close releases the underlying provider's resources.
func (p *PacedEmbedder) Close() error {
	return p.inner.Close()
}
