package llm

import (
	"context"
	"fmt"
	"strings"

	"themisai-backend/vectorindex"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NewGeminiClient creates a Gemini client from an API key
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// GeminiChat generates replies with a Gemini model
type GeminiChat struct {
	client *genai.Client
	model  string
}

// NewGeminiChat wraps an existing client
func NewGeminiChat(client *genai.Client, model string) *GeminiChat {
	return &GeminiChat{client: client, model: model}
}

// Complete returns the concatenated text parts of the first candidate
func (c *GeminiChat) Complete(ctx context.Context, req ChatRequest) (string, error) {
	name := c.model
	if req.Model != "" {
		name = req.Model
	}

	model := c.client.GenerativeModel(name)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return candidateText(resp)
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// GeminiEmbedder embeds text with a Gemini embedding model
type GeminiEmbedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiEmbedder wraps an existing client
func NewGeminiEmbedder(client *genai.Client, model string, dimension int) *GeminiEmbedder {
	return &GeminiEmbedder{client: client, model: model, dimension: dimension}
}

// Dimension returns the embedding dimension
func (e *GeminiEmbedder) Dimension() int {
	return e.dimension
}

// Embed returns the L2-normalised embedding of text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.EmbeddingModel(e.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, ErrEmptyResponse
	}

	vector := make([]float32, len(res.Embedding.Values))
	copy(vector, res.Embedding.Values)
	return vectorindex.Normalize(vector), nil
}

var (
	_ Chat     = (*GeminiChat)(nil)
	_ Embedder = (*GeminiEmbedder)(nil)
)
