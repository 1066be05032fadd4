package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
	assert.Equal(t, 96, cfg.Embedding.BatchSize)
	assert.Equal(t, 10, cfg.Embedding.PaceSecs)
	assert.Equal(t, "openai", cfg.LLM.Provider)

	// One source per kind, rooted in the data dir.
	require.Len(t, cfg.Sources, 5)
	assert.Equal(t, "detailed-tour", cfg.Sources[0].Kind)
	assert.Equal(t, filepath.Join("data", "detailed_tours.json"), cfg.Sources[0].Path)
}

func TestLoad_PartialFileKeepsSetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"

[embedding]
provider = "ollama"
base_url = "http://localhost:11434"
model = "nomic-embed-text"
batch_size = 8
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 8, cfg.Embedding.BatchSize)

	// Unset fields still default.
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 10, cfg.Embedding.PaceSecs)
	assert.Len(t, cfg.Sources, 5)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\naddr = broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Server.Addr = ":7070"
	cfg.Credentials = []Credential{{Email: "alex@example.com", Password: "secret"}}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", loaded.Server.Addr)
	require.Len(t, loaded.Credentials, 1)
	assert.Equal(t, "alex@example.com", loaded.Credentials[0].Email)
}

func TestPathOverrides(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "embeddings.json"), cfg.CachePath())
	assert.Equal(t, filepath.Join("data", "querylog.db"), cfg.QueryLogPath())

	cfg.Data.CachePath = "/var/cache/embeddings.json"
	cfg.Data.QueryLogPath = "/var/cache/queries.db"
	assert.Equal(t, "/var/cache/embeddings.json", cfg.CachePath())
	assert.Equal(t, "/var/cache/queries.db", cfg.QueryLogPath())
}

func TestAPIKeyResolution(t *testing.T) {
	t.Setenv("WAYFARER_TEST_KEY", "sk-test")

	cfg := EmbeddingConfig{APIKeyEnv: "WAYFARER_TEST_KEY"}
	assert.Equal(t, "sk-test", cfg.APIKey())

	cfg.APIKeyEnv = "WAYFARER_UNSET_KEY"
	assert.Empty(t, cfg.APIKey())
}
