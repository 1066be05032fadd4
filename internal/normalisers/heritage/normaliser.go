// Package heritage normalises heritage site records. Site descriptions
// arrive as HTML fragments and are stripped to plain text before
// concatenation.
package heritage

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles the heritage-site source.
type Normaliser struct{}

// New creates a heritage-site normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the source kind this normaliser handles.
func (n *Normaliser) Kind() domain.SourceKind {
	return domain.SourceHeritageSite
}

// siteRecord is the heritage-site source schema.
// ShortDescription may contain HTML markup.
type siteRecord struct {
	Site             string `json:"site"`
	Country          string `json:"country"`
	Category         string `json:"category"`
	ShortDescription string `json:"short_description"`
	UnescoListed     bool   `json:"unesco_listed"`
}

// Normalise parses the source file and returns one document per site.
func (n *Normaliser) Normalise(data []byte) ([]domain.Document, error) {
	var records []siteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse heritage sites: %w", err)
	}

	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		if rec.Site == "" {
			continue
		}

		var parts []string
		if rec.Country != "" {
			parts = append(parts, "Country: "+rec.Country)
		}
		if rec.Category != "" {
			parts = append(parts, "Category: "+rec.Category)
		}
		if desc := stripHTML(rec.ShortDescription); desc != "" {
			parts = append(parts, desc)
		}
		if rec.UnescoListed {
			parts = append(parts, "UNESCO World Heritage listed")
		}

		docs = append(docs, domain.Document{
			ID:    domain.DocumentID(domain.SourceHeritageSite, rec.Site),
			Title: rec.Site,
			Text:  strings.Join(parts, ". "),
		})
	}

	return docs, nil
}

// Pre-compiled regular expressions for HTML stripping.
var (
	scriptTag   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	comments    = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags     = regexp.MustCompile(`<[^>]+>`)
	multiSpaces = regexp.MustCompile(`\s+`)
)

// stripHTML converts an HTML fragment to plain text.
func stripHTML(fragment string) string {
	text := scriptTag.ReplaceAllString(fragment, " ")
	text = styleTag.ReplaceAllString(text, " ")
	text = comments.ReplaceAllString(text, " ")
	text = allTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = multiSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
