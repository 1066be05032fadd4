package summaries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

func TestNormalise(t *testing.T) {
	data := []byte(`[
		{"name": "Kyoto Classics", "country": "Japan", "summary": "Temples, gardens and tea houses."},
		{"name": "Atlas Trek", "country": "Morocco", "summary": "High mountain villages."}
	]`)

	docs, err := New().Normalise(data)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "tour-summary_kyoto-classics", docs[0].ID)
	assert.Equal(t, "Kyoto Classics", docs[0].Title)
	assert.Equal(t, "Country: Japan. Temples, gardens and tea houses.", docs[0].Text)
	assert.Equal(t, "tour-summary_atlas-trek", docs[1].ID)
}

func TestNormalise_SkipsNamelessRecords(t *testing.T) {
	data := []byte(`[{"summary": "orphaned"}, {"name": "Kept"}]`)

	docs, err := New().Normalise(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Kept", docs[0].Title)
}

func TestNormalise_BadJSON(t *testing.T) {
	_, err := New().Normalise([]byte(`not json`))
	assert.Error(t, err)
}

func TestKind(t *testing.T) {
	assert.Equal(t, domain.SourceTourSummary, New().Kind())
}
