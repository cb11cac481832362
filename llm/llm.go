// Package llm adapts hosted chat and embedding models to the small
// interfaces the services consume.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a model answers with no content
var ErrEmptyResponse = errors.New("model returned no content")

// ChatRequest is a single system+user chat turn
type ChatRequest struct {
	Model       string // empty means the client default
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Chat generates a reply for one chat turn
type Chat interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Embedder returns unit-length embeddings of a fixed dimension
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
