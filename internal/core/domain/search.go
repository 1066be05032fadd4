package domain

import "time"

// SearchResult pairs a retrieved document with its similarity score.
type SearchResult struct {
	Document Document

	// Score is the cosine similarity against the query vector.
	// Zero-magnitude corpus vectors score -1 so they always rank last.
	Score float64
}

// Answer is the outcome of a grounded chat query.
type Answer struct {
	// Documents are the retrieved grounding documents, most similar first.
	Documents []Document

	// GeneratedText is the provider's generated response.
	GeneratedText string

	// Citations names the documents the response was grounded on.
	Citations []string
}

// ItineraryResult is the outcome of an itinerary generation request.
type ItineraryResult struct {
	Itinerary string
}

// QueryRecord is one served query, kept for operator telemetry.
type QueryRecord struct {
	ID          string
	Kind        string // "chat" or "itinerary"
	Prompt      string
	DocumentIDs []string
	Latency     time.Duration
	CreatedAt   time.Time
}

// Session is an authenticated login session.
type Session struct {
	Token string
	Email string
}
