package llm

import (
	"context"
	"fmt"
	"strings"

	"themisai-backend/vectorindex"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// vLLM ignores the key but the client always sends one
const placeholderAPIKey = "EMPTY"

func newOpenAIClient(baseURL, apiKey string) openai.Client {
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/v1/"))
	}
	return openai.NewClient(opts...)
}

// OpenAIChat calls an OpenAI-compatible chat completion endpoint such as vLLM
type OpenAIChat struct {
	client openai.Client
	model  string
}

// NewOpenAIChat creates a chat client. baseURL is the server root without /v1.
func NewOpenAIChat(baseURL, apiKey, model string) *OpenAIChat {
	return &OpenAIChat{client: newOpenAIClient(baseURL, apiKey), model: model}
}

// Complete returns the content of the first choice
func (c *OpenAIChat) Complete(ctx context.Context, req ChatRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint
type OpenAIEmbedder struct {
	client    openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates an embedder producing vectors of the given dimension
func NewOpenAIEmbedder(baseURL, apiKey, model string, dimension int) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client:    newOpenAIClient(baseURL, apiKey),
		model:     model,
		dimension: dimension,
	}
}

// Dimension returns the embedding dimension
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed returns the L2-normalised embedding of text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyResponse
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vectorindex.Normalize(vector), nil
}

var (
	_ Chat     = (*OpenAIChat)(nil)
	_ Embedder = (*OpenAIEmbedder)(nil)
)
