package driving

import (
	"context"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// QueryService answers travel queries grounded on the embedded corpus.
type QueryService interface {
	// Answer embeds the prompt, retrieves the most similar documents and
	// generates a grounded response.
	//
	// Failure modes are distinct: domain.ErrInvalidInput for an empty
	// prompt (no provider call made), domain.ErrNotReady while the corpus
	// is building, domain.ErrUpstream when a provider call fails.
	Answer(ctx context.Context, prompt string) (*domain.Answer, error)

	// Itinerary generates a travel itinerary from free-form user input,
	// grounded the same way with itinerary instructions. Same failure modes.
	Itinerary(ctx context.Context, userInput string) (*domain.ItineraryResult, error)

	// Search returns the top-k most similar documents without generation.
	Search(ctx context.Context, prompt string, k int) ([]domain.SearchResult, error)
}

// Authenticator validates login credentials and session tokens.
type Authenticator interface {
	// Login checks email and password against the configured static
	// credential list and issues an opaque session token.
	Login(email, password string) (*domain.Session, error)

	// Verify reports whether token belongs to an active session.
	Verify(token string) bool
}
