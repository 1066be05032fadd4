package driven

import (
	"context"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// LLMService generates grounded text from retrieved documents.
// The generation call itself is opaque to the core: retrieval decides what
// the model sees, the provider decides what it says.
type LLMService interface {
	// Chat generates a response to message, grounded on the given documents
	// and steered by instructions.
	Chat(ctx context.Context, message string, docs []domain.Document, instructions string) (*Generation, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the provider is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Generation is the provider's response to a Chat call.
type Generation struct {
	// Text is the generated response.
	Text string

	// Citations names the grounding documents the response drew on.
	Citations []string
}
