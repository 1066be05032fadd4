// Package tours normalises detailed tour records.
package tours

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles the detailed-tour source.
type Normaliser struct{}

// New creates a detailed-tour normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the source kind this normaliser handles.
func (n *Normaliser) Kind() domain.SourceKind {
	return domain.SourceDetailedTour
}

// tourRecord is the detailed-tour source schema. All fields except name are
// optional in the source data.
type tourRecord struct {
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Region      string   `json:"region"`
	Duration    string   `json:"duration"`
	Highlights  []string `json:"highlights"`
	Description string   `json:"description"`
	PriceBand   string   `json:"price_band"`
}

// Normalise parses the source file and returns one document per tour.
// Records without a name are skipped: no stable ID can be derived for them.
func (n *Normaliser) Normalise(data []byte) ([]domain.Document, error) {
	var records []tourRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse detailed tours: %w", err)
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
		if rec.Region != "" {
			parts = append(parts, "Region: "+rec.Region)
		}
		if rec.Duration != "" {
			parts = append(parts, "Duration: "+rec.Duration)
		}
		if len(rec.Highlights) > 0 {
			parts = append(parts, "Highlights: "+strings.Join(rec.Highlights, ", "))
		}
		if rec.Description != "" {
			parts = append(parts, rec.Description)
		}
		if rec.PriceBand != "" {
			parts = append(parts, "Price band: "+rec.PriceBand)
		}

		docs = append(docs, domain.Document{
			ID:    domain.DocumentID(domain.SourceDetailedTour, rec.Name),
			Title: rec.Name,
			Text:  strings.Join(parts, ". "),
		})
	}

	return docs, nil
}
