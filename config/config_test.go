package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VLLM_BASE", "http://localhost:8000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.LegalIndex.TopK)
	assert.Equal(t, 3, cfg.LawyerIndex.TopK)
	assert.Equal(t, 50, cfg.LawyerIndex.SearchPoolK)
	assert.InDelta(t, 0.6, cfg.LawyerIndex.Alpha, 1e-9)
	assert.Equal(t, GeocodePolicyFail, cfg.LawyerIndex.GeocodeFailurePolicy)
	assert.Equal(t, 2048, cfg.Chat.MaxTokens)
	assert.Equal(t, 1200, cfg.Chat.DocumentMaxTokens)
	assert.Equal(t, 300*time.Second, cfg.Chat.GenerationTimeout)
	assert.Equal(t, 16000, cfg.Context.MaxChars)
	assert.Equal(t, "id", cfg.Geocoder.CountryCodes)
	assert.Equal(t, cfg.Chat.Model, cfg.Chat.IntentModel)
	assert.Equal(t, cfg.Embedder.Model, cfg.LawyerIndex.EmbedModel)
	assert.Equal(t, "http://localhost:8000", cfg.Embedder.BaseURL)
	assert.Equal(t, DefaultSapaMessage, cfg.Messages.Sapa)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
chat:
  base_url: http://vllm:8000
  model: google/gemma-3-4b-it
lawyer_index:
  top_k: 5
  alpha: 0.8
  geocode_failure_policy: semantic_only
context:
  max_chars: 9000
`)
	t.Setenv("TOP_K", "4")
	t.Setenv("INTENT_MODEL", "small-classifier")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "google/gemma-3-4b-it", cfg.Chat.Model)
	assert.Equal(t, "small-classifier", cfg.Chat.IntentModel)
	assert.Equal(t, 4, cfg.LegalIndex.TopK)
	assert.Equal(t, 5, cfg.LawyerIndex.TopK)
	assert.InDelta(t, 0.8, cfg.LawyerIndex.Alpha, 1e-9)
	assert.Equal(t, GeocodePolicySemanticOnly, cfg.LawyerIndex.GeocodeFailurePolicy)
	assert.Equal(t, 9000, cfg.Context.MaxChars)
	// untouched keys keep their defaults
	assert.Equal(t, "lawyers/index_lawyers.faiss", cfg.LawyerIndex.IndexKey)
	assert.Equal(t, 50, cfg.LawyerIndex.SearchPoolK)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("VLLM_BASE", "http://localhost:8000")
	t.Setenv("LAWYER_ALPHA_SEMANTIC", "abc")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAWYER_ALPHA_SEMANTIC")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Chat.BaseURL = "http://localhost:8000"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "alpha above one", mutate: func(c *Config) { c.LawyerIndex.Alpha = 1.5 }, wantErr: "alpha"},
		{name: "negative alpha", mutate: func(c *Config) { c.LawyerIndex.Alpha = -0.1 }, wantErr: "alpha"},
		{name: "pool smaller than k", mutate: func(c *Config) { c.LawyerIndex.SearchPoolK = 2 }, wantErr: "search_pool_k"},
		{name: "zero top k", mutate: func(c *Config) { c.LegalIndex.TopK = 0 }, wantErr: "legal_index.top_k"},
		{name: "unknown policy", mutate: func(c *Config) { c.LawyerIndex.GeocodeFailurePolicy = "retry" }, wantErr: "geocode_failure_policy"},
		{name: "pgvector without table", mutate: func(c *Config) { c.LegalIndex.Backend = BackendPgvector }, wantErr: "pgvector_table"},
		{name: "unknown provider", mutate: func(c *Config) { c.Chat.Provider = "anthropic" }, wantErr: "chat.provider"},
		{name: "missing base url", mutate: func(c *Config) { c.Chat.BaseURL = "" }, wantErr: "VLLM_BASE"},
		{name: "missing user agent", mutate: func(c *Config) { c.Geocoder.UserAgent = "" }, wantErr: "user_agent"},
		{name: "tiny context budget", mutate: func(c *Config) { c.Context.MaxChars = 10 }, wantErr: "context budgets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
