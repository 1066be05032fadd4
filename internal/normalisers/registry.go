package normalisers

import (
	"fmt"

	"github.com/wayfarer-labs/wayfarer/internal/normalisers/countries"
	"github.com/wayfarer-labs/wayfarer/internal/normalisers/heritage"
	"github.com/wayfarer-labs/wayfarer/internal/normalisers/summaries"
	"github.com/wayfarer-labs/wayfarer/internal/normalisers/tours"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps source kinds to their normalisers.
type Registry struct {
	byKind map[domain.SourceKind]driven.Normaliser
}

// NewRegistry creates a registry with every built-in normaliser registered.
func NewRegistry() *Registry {
	r := &Registry{byKind: make(map[domain.SourceKind]driven.Normaliser)}
	r.register(tours.New())
	r.register(summaries.New())
	r.register(countries.New())
	r.register(countries.NewMerged())
	r.register(heritage.New())
	return r
}

func (r *Registry) register(n driven.Normaliser) {
	r.byKind[n.Kind()] = n
}

// Get returns the normaliser for kind.
func (r *Registry) Get(kind domain.SourceKind) (driven.Normaliser, error) {
	n, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, kind)
	}
	return n, nil
}
