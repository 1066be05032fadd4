// Package file provides the on-disk embedding cache store.
//
// The cache is a single JSON file holding the ordered embedded document
// collection. It is written atomically (temp file + rename) and loaded
// wholesale: either the complete set is available or none of it is. A
// truncated or inconsistent file is reported as corrupt, never served
// partially.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.EmbeddingCacheStore = (*Store)(nil)

// DefaultFileName is the cache file name inside the data directory.
const DefaultFileName = "embeddings.json"

// Store persists the embedded corpus as one JSON file.
type Store struct {
	path string
}

// record is the serialized form of one embedded document.
type record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// NewStore creates a cache store at path.
// If path names a directory, DefaultFileName inside it is used.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("cache: path is required")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	return &Store{path: path}, nil
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a cache file is present, without parsing it.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Save atomically persists the complete embedded document set.
func (s *Store) Save(docs []domain.EmbeddedDocument) error {
	records := make([]record, len(docs))
	for i, doc := range docs {
		records[i] = record{
			ID:        doc.ID,
			Title:     doc.Title,
			Text:      doc.Text,
			Embedding: doc.Embedding,
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("cache: create directory: %w", err)
	}

	// Write-then-rename so a crash mid-write leaves the old cache intact.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".embeddings-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: rename: %w", err)
	}

	return nil
}

// Load returns the persisted embedded document set.
//
// Outcomes: (docs, nil) when present and valid; domain.ErrCacheNotFound when
// no cache exists yet; domain.ErrCacheCorrupt when the file is unparsable,
// holds no records, or its embeddings do not share one dimensionality.
func (s *Store) Load() ([]domain.EmbeddedDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheNotFound
		}
		return nil, fmt.Errorf("cache: read %s: %w", s.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCacheCorrupt, s.path, err)
	}

	// A cache file is only ever written with the complete corpus, so a file
	// that parses to zero records is truncation or tampering, not a state a
	// build can produce. Reporting it corrupt forces a rebuild instead of
	// serving an empty corpus as Ready.
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: file holds no records", domain.ErrCacheCorrupt, s.path)
	}

	docs := make([]domain.EmbeddedDocument, len(records))
	dims := -1
	for i, rec := range records {
		if len(rec.Embedding) == 0 || rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d incomplete", domain.ErrCacheCorrupt, i)
		}
		if dims == -1 {
			dims = len(rec.Embedding)
		} else if len(rec.Embedding) != dims {
			return nil, fmt.Errorf("%w: record %d has %d dimensions, expected %d",
				domain.ErrCacheCorrupt, i, len(rec.Embedding), dims)
		}
		docs[i] = domain.EmbeddedDocument{
			Document: domain.Document{
				ID:    rec.ID,
				Title: rec.Title,
				Text:  rec.Text,
			},
			Embedding: rec.Embedding,
		}
	}

	return docs, nil
}
