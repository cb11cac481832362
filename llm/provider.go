package llm

import (
	"context"
	"fmt"

	"themisai-backend/config"

	"github.com/google/generative-ai-go/genai"
)

// Provider builds the chat client and embedders selected by configuration
type Provider struct {
	chat     config.ChatConfig
	embedder config.EmbedderConfig
	gemini   *genai.Client
}

// NewProvider opens a Gemini client only when one of the providers needs it
func NewProvider(ctx context.Context, chat config.ChatConfig, embedder config.EmbedderConfig) (*Provider, error) {
	p := &Provider{chat: chat, embedder: embedder}

	if chat.Provider == config.ProviderGemini || embedder.Provider == config.ProviderGemini {
		key := chat.APIKey
		if chat.Provider != config.ProviderGemini {
			key = embedder.APIKey
		}
		client, err := NewGeminiClient(ctx, key)
		if err != nil {
			return nil, err
		}
		p.gemini = client
	}
	return p, nil
}

// Chat returns the generation client
func (p *Provider) Chat() (Chat, error) {
	switch p.chat.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIChat(p.chat.BaseURL, p.chat.APIKey, p.chat.Model), nil
	case config.ProviderGemini:
		return NewGeminiChat(p.gemini, p.chat.Model), nil
	default:
		return nil, fmt.Errorf("unknown chat provider: %s", p.chat.Provider)
	}
}

// Embedder returns an embedder for model, or the configured default model when empty
func (p *Provider) Embedder(model string) (Embedder, error) {
	if model == "" {
		model = p.embedder.Model
	}
	switch p.embedder.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIEmbedder(p.embedder.BaseURL, p.embedder.APIKey, model, p.embedder.Dimension), nil
	case config.ProviderGemini:
		return NewGeminiEmbedder(p.gemini, model, p.embedder.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", p.embedder.Provider)
	}
}

// Close releases the Gemini client, if any
func (p *Provider) Close() error {
	if p.gemini == nil {
		return nil
	}
	return p.gemini.Close()
}
