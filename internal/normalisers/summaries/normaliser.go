// Package summaries normalises short tour summary records.
package summaries

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles the tour-summary source.
type Normaliser struct{}

// New creates a tour-summary normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the source kind this normaliser handles.
func (n *Normaliser) Kind() domain.SourceKind {
	return domain.SourceTourSummary
}

// summaryRecord is the tour-summary source schema.
type summaryRecord struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Summary string `json:"summary"`
}

// Normalise parses the source file and returns one document per summary.
func (n *Normaliser) Normalise(data []byte) ([]domain.Document, error) {
	var records []summaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse tour summaries: %w", err)
	}

	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}

		var parts []string
		if rec.Country != "" {
			parts = append(parts, "Country: "+rec.Country)
		}
		if rec.Summary != "" {
			parts = append(parts, rec.Summary)
		}

		docs = append(docs, domain.Document{
			ID:    domain.DocumentID(domain.SourceTourSummary, rec.Name),
			Title: rec.Name,
			Text:  strings.Join(parts, ". "),
		})
	}

	return docs, nil
}
