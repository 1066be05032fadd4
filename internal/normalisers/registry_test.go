package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

func TestRegistry_CoversEveryKind(t *testing.T) {
	registry := NewRegistry()

	for _, kind := range domain.Kinds() {
		n, err := registry.Get(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, n.Kind())
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(domain.SourceKind("weather-report"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}
