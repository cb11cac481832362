package vectorindex

import (
	"context"
	"fmt"
)

// Embedder turns text into a unit-length vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Match is a search hit joined with its metadata record
type Match[T any] struct {
	Record     T
	Position   int
	Similarity float64
}

// Adapter embeds query text and searches one corpus
type Adapter[T any] struct {
	embedder Embedder
	corpus   *Corpus[T]
}

// NewAdapter fails when the embedder and the index disagree on dimension
func NewAdapter[T any](embedder Embedder, corpus *Corpus[T]) (*Adapter[T], error) {
	if embedder.Dimension() != corpus.Dimension() {
		return nil, fmt.Errorf("embedder produces %d dims, index has %d: %w",
			embedder.Dimension(), corpus.Dimension(), ErrDimensionMismatch)
	}
	return &Adapter[T]{embedder: embedder, corpus: corpus}, nil
}

// Search returns up to k matches ordered by similarity. Hits without a record are dropped.
func (a *Adapter[T]) Search(ctx context.Context, query string, k int) ([]Match[T], error) {
	vec, err := a.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vec) != a.corpus.Dimension() {
		return nil, fmt.Errorf("query embedding has %d dims, index has %d: %w",
			len(vec), a.corpus.Dimension(), ErrDimensionMismatch)
	}

	hits, err := a.corpus.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	matches := make([]Match[T], 0, len(hits))
	for _, hit := range hits {
		rec, ok := a.corpus.Record(hit.Position)
		if !ok {
			continue
		}
		matches = append(matches, Match[T]{
			Record:     rec,
			Position:   hit.Position,
			Similarity: float64(hit.Similarity),
		})
	}
	return matches, nil
}
