// Package countries normalises country profile records, plain and merged.
package countries

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure both normalisers implement the interface.
var (
	_ driven.Normaliser = (*Normaliser)(nil)
	_ driven.Normaliser = (*MergedNormaliser)(nil)
)

// profileRecord is the country-profile source schema. The merged variant
// extends it with traveller tips and visa notes.
type profileRecord struct {
	Country    string   `json:"country"`
	Capital    string   `json:"capital"`
	Language   string   `json:"language"`
	Currency   string   `json:"currency"`
	BestSeason string   `json:"best_season"`
	Overview   string   `json:"overview"`
	Tips       []string `json:"tips"`
	Visa       string   `json:"visa"`
}

// text concatenates the record's descriptive fields, skipping absent ones.
func (r profileRecord) text(merged bool) string {
	var parts []string
	if r.Capital != "" {
		parts = append(parts, "Capital: "+r.Capital)
	}
	if r.Language != "" {
		parts = append(parts, "Language: "+r.Language)
	}
	if r.Currency != "" {
		parts = append(parts, "Currency: "+r.Currency)
	}
	if r.BestSeason != "" {
		parts = append(parts, "Best season: "+r.BestSeason)
	}
	if r.Overview != "" {
		parts = append(parts, r.Overview)
	}
	if merged {
		if len(r.Tips) > 0 {
			parts = append(parts, "Tips: "+strings.Join(r.Tips, ", "))
		}
		if r.Visa != "" {
			parts = append(parts, "Visa: "+r.Visa)
		}
	}
	return strings.Join(parts, ". ")
}

func normalise(data []byte, kind domain.SourceKind, merged bool) ([]domain.Document, error) {
	var records []profileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s records: %w", kind, err)
	}

	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		if rec.Country == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:    domain.DocumentID(kind, rec.Country),
			Title: rec.Country,
			Text:  rec.text(merged),
		})
	}
	return docs, nil
}

// Normaliser handles the country-profile source.
type Normaliser struct{}

// New creates a country-profile normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the source kind this normaliser handles.
func (n *Normaliser) Kind() domain.SourceKind {
	return domain.SourceCountryProfile
}

// Normalise parses the source file and returns one document per country.
func (n *Normaliser) Normalise(data []byte) ([]domain.Document, error) {
	return normalise(data, domain.SourceCountryProfile, false)
}

// MergedNormaliser handles the merged-country-profile source, which carries
// the profile fields plus traveller tips and visa notes.
type MergedNormaliser struct{}

// NewMerged creates a merged-country-profile normaliser.
func NewMerged() *MergedNormaliser {
	return &MergedNormaliser{}
}

// Kind returns the source kind this normaliser handles.
func (n *MergedNormaliser) Kind() domain.SourceKind {
	return domain.SourceMergedCountryProfile
}

// Normalise parses the source file and returns one document per country.
func (n *MergedNormaliser) Normalise(data []byte) ([]domain.Document, error) {
	return normalise(data, domain.SourceMergedCountryProfile, true)
}
