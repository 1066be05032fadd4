// Package config loads the Wayfarer configuration from a TOML file.
// A missing file yields the defaults; individual missing fields are
// defaulted after parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DataConfig configures data locations.
type DataConfig struct {
	// Dir holds the corpus source files and, by default, the embedding
	// cache and query log.
	Dir string `toml:"dir"`

	// CachePath overrides the embedding cache location (default: <dir>/embeddings.json).
	CachePath string `toml:"cache_path"`

	// QueryLogPath overrides the query log location (default: <dir>/querylog.db).
	QueryLogPath string `toml:"query_log_path"`

	// Watch enables rebuilding the corpus when source files change.
	Watch bool `toml:"watch"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	// Provider selects the client: "openai" or "ollama".
	Provider string `toml:"provider"`

	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	TimeoutSecs int `toml:"timeout_secs"`
	Dimensions  int `toml:"dimensions"`

	// BatchSize caps texts per provider request.
	BatchSize int `toml:"batch_size"`

	// PaceSecs is the wait between successive batch submissions.
	PaceSecs int `toml:"pace_secs"`
}

// APIKey resolves the provider API key from the environment.
func (c EmbeddingConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// LLMConfig configures the generation provider.
type LLMConfig struct {
	// Provider selects the client: "openai" or "ollama".
	Provider string `toml:"provider"`

	BaseURL     string `toml:"base_url"`
	Model       string `toml:"model"`
	APIKeyEnv   string `toml:"api_key_env"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// APIKey resolves the provider API key from the environment.
func (c LLMConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// SourceConfig names one corpus source file.
type SourceConfig struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

// Credential is one static login credential.
type Credential struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Config is the root configuration.
type Config struct {
	Server      ServerConfig    `toml:"server"`
	Data        DataConfig      `toml:"data"`
	Embedding   EmbeddingConfig `toml:"embedding"`
	LLM         LLMConfig       `toml:"llm"`
	Sources     []SourceConfig  `toml:"sources"`
	Credentials []Credential    `toml:"credentials"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".wayfarer", "config.toml"), nil
}

// Load reads the config at path. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// CachePath returns the effective embedding cache location.
func (c *Config) CachePath() string {
	if c.Data.CachePath != "" {
		return c.Data.CachePath
	}
	return filepath.Join(c.Data.Dir, "embeddings.json")
}

// QueryLogPath returns the effective query log location.
func (c *Config) QueryLogPath() string {
	if c.Data.QueryLogPath != "" {
		return c.Data.QueryLogPath
	}
	return filepath.Join(c.Data.Dir, "querylog.db")
}

func defaultConfig() *Config {
	return &Config{}
}

// defaultSourceFiles maps each source kind to its conventional file name.
var defaultSourceFiles = map[domain.SourceKind]string{
	domain.SourceDetailedTour:         "detailed_tours.json",
	domain.SourceTourSummary:          "tour_summaries.json",
	domain.SourceCountryProfile:       "country_profiles.json",
	domain.SourceMergedCountryProfile: "merged_country_profiles.json",
	domain.SourceHeritageSite:         "heritage_sites.json",
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}

	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = 96
	}
	if cfg.Embedding.PaceSecs == 0 {
		cfg.Embedding.PaceSecs = 10
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}

	// One source per kind, in the fixed corpus build order.
	if len(cfg.Sources) == 0 {
		for _, kind := range domain.Kinds() {
			cfg.Sources = append(cfg.Sources, SourceConfig{
				Kind: string(kind),
				Path: filepath.Join(cfg.Data.Dir, defaultSourceFiles[kind]),
			})
		}
	}
}
