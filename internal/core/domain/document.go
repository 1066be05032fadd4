package domain

import "strings"

// SourceKind identifies one of the fixed corpus record collections.
type SourceKind string

const (
	// SourceDetailedTour holds full tour records with itineraries and pricing.
	SourceDetailedTour SourceKind = "detailed-tour"
	// SourceTourSummary holds short one-paragraph tour digests.
	SourceTourSummary SourceKind = "tour-summary"
	// SourceCountryProfile holds per-country travel profiles.
	SourceCountryProfile SourceKind = "country-profile"
	// SourceMergedCountryProfile holds country profiles enriched with tips and visa notes.
	SourceMergedCountryProfile SourceKind = "merged-country-profile"
	// SourceHeritageSite holds heritage site records with HTML descriptions.
	SourceHeritageSite SourceKind = "heritage-site"
)

// Kinds lists every supported source kind in corpus build order.
// The order is fixed so repeated builds produce the same document sequence.
func Kinds() []SourceKind {
	return []SourceKind{
		SourceDetailedTour,
		SourceTourSummary,
		SourceCountryProfile,
		SourceMergedCountryProfile,
		SourceHeritageSite,
	}
}

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceDetailedTour, SourceTourSummary, SourceCountryProfile,
		SourceMergedCountryProfile, SourceHeritageSite:
		return true
	}
	return false
}

// Document is the normalised unit of retrievable text.
type Document struct {
	// ID is deterministically derived from the source record via DocumentID.
	// It is stable across reloads and used for idempotent re-embedding and
	// debugging, never for ranking.
	ID string

	// Title is a short human-readable label.
	Title string

	// Text is the concatenation of the record's descriptive fields.
	// May be empty, never carries null-propagation artifacts.
	Text string
}

// EmbeddingText returns the string submitted to the embedding provider.
func (d Document) EmbeddingText() string {
	return d.Title + ". " + d.Text
}

// EmbeddedDocument pairs a document with its embedding vector.
// Every embedding in one corpus shares the same dimensionality.
type EmbeddedDocument struct {
	Document
	Embedding []float32
}

// DocumentID derives the stable document identifier for a source record.
// The same kind and name always yield the same ID.
func DocumentID(kind SourceKind, name string) string {
	return string(kind) + "_" + slugify(name)
}

// slugify lowercases the name and collapses runs of non-alphanumeric
// characters into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
