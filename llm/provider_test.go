package llm

import (
	"context"
	"testing"

	"themisai-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_OpenAI(t *testing.T) {
	p, err := NewProvider(context.Background(),
		config.ChatConfig{Provider: config.ProviderOpenAI, BaseURL: "http://localhost:8000", Model: "qwen"},
		config.EmbedderConfig{Provider: config.ProviderOpenAI, BaseURL: "http://localhost:8001", Model: "minilm", Dimension: 384},
	)
	require.NoError(t, err)
	defer p.Close()

	chat, err := p.Chat()
	require.NoError(t, err)
	assert.IsType(t, &OpenAIChat{}, chat)

	emb, err := p.Embedder("")
	require.NoError(t, err)
	assert.Equal(t, 384, emb.Dimension())
	assert.Equal(t, "minilm", emb.(*OpenAIEmbedder).model)

	lawyerEmb, err := p.Embedder("lawyer-minilm")
	require.NoError(t, err)
	assert.Equal(t, "lawyer-minilm", lawyerEmb.(*OpenAIEmbedder).model)
}

func TestProvider_GeminiNeedsKey(t *testing.T) {
	_, err := NewProvider(context.Background(),
		config.ChatConfig{Provider: config.ProviderGemini, Model: "gemini-2.5-flash"},
		config.EmbedderConfig{Provider: config.ProviderOpenAI},
	)
	assert.Error(t, err)
}

func TestProvider_UnknownProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), config.ChatConfig{Provider: "bedrock"}, config.EmbedderConfig{Provider: "bedrock"})
	require.NoError(t, err)

	_, err = p.Chat()
	assert.Error(t, err)
	_, err = p.Embedder("")
	assert.Error(t, err)
}
