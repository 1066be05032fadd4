package heritage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

func TestNormalise(t *testing.T) {
	data := []byte(`[
		{
			"site": "Petra",
			"country": "Jordan",
			"category": "Cultural",
			"short_description": "<p>A <b>rock-cut</b> city.</p>",
			"unesco_listed": true
		}
	]`)

	docs, err := New().Normalise(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "heritage-site_petra", doc.ID)
	assert.Equal(t, "Petra", doc.Title)
	assert.Equal(t,
		"Country: Jordan. Category: Cultural. A rock-cut city. UNESCO World Heritage listed",
		doc.Text)
}

func TestNormalise_UnlistedSiteOmitsMarker(t *testing.T) {
	data := []byte(`[{"site": "Quiet Valley", "unesco_listed": false}]`)

	docs, err := New().Normalise(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotContains(t, docs[0].Text, "UNESCO")
}

func TestNormalise_SkipsSitelessRecords(t *testing.T) {
	data := []byte(`[{"country": "Jordan"}, {"site": "Kept"}]`)

	docs, err := New().Normalise(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Kept", docs[0].Title)
}

func TestNormalise_BadJSON(t *testing.T) {
	_, err := New().Normalise([]byte(`<html>`))
	assert.Error(t, err)
}

func TestKind(t *testing.T) {
	assert.Equal(t, domain.SourceHeritageSite, New().Kind())
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain text untouched", "already plain", "already plain"},
		{"tags removed", "<p>Hello <b>world</b></p>", "Hello world"},
		{"entities decoded", "Trails &amp; temples &mdash; daily", "Trails & temples — daily"},
		{"script stripped", `before<script>alert("x")</script>after`, "before after"},
		{"style stripped", "<style>p { color: red }</style>text", "text"},
		{"comments stripped", "a<!-- hidden -->b", "a b"},
		{"whitespace collapsed", "  too \n\n many\tspaces  ", "too many spaces"},
		{"attributes ignored", `<a href="https://example.com" target="_blank">link</a>`, "link"},
		{"empty", "", ""},
		{"only markup", "<div><br/></div>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripHTML(tc.in))
		})
	}
}
