package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// Retrieval depth defaults.
const (
	// DefaultTopK is the retrieval depth for generic search.
	DefaultTopK = 5

	// ChatTopK is the retrieval depth for the chat-answering path.
	ChatTopK = 10
)

// zeroNormScore ranks zero-magnitude vectors below every real similarity.
// Cosine similarity is bounded to [-1, 1], so -1 minus anything sorts last
// and the result is still comparable (never NaN).
const zeroNormScore = -1.0

// CosineSimilarity computes the cosine similarity between two vectors of
// equal length: dot(a,b) / (|a| * |b|). If either vector has zero magnitude
// the result is zeroNormScore rather than NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return zeroNormScore
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return zeroNormScore
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK ranks the corpus by descending cosine similarity against query and
// returns up to k results. Ties keep original corpus order (stable sort);
// k is clamped to the corpus size.
//
// The query vector must match the corpus dimensionality; a mismatch is
// domain.ErrDimensionMismatch, never a silent truncation.
func TopK(query []float32, corpus []domain.EmbeddedDocument, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	if len(corpus) == 0 {
		return []domain.SearchResult{}, nil
	}

	if d := len(corpus[0].Embedding); len(query) != d {
		return nil, fmt.Errorf("%w: query has %d dimensions, corpus has %d",
			domain.ErrDimensionMismatch, len(query), d)
	}

	results := make([]domain.SearchResult, len(corpus))
	for i, doc := range corpus {
		results[i] = domain.SearchResult{
			Document: doc.Document,
			Score:    CosineSimilarity(query, doc.Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}
