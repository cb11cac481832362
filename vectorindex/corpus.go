package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"themisai-backend/storage"
)

// ErrIndexMisaligned is returned when an index and its metadata sidecar disagree on size
var ErrIndexMisaligned = errors.New("index and metadata are not aligned")

// Corpus pairs a vector index with the metadata record stored at each position
type Corpus[T any] struct {
	index   Searcher
	records []T
}

// NewCorpus validates that every index position has a record
func NewCorpus[T any](index Searcher, records []T) (*Corpus[T], error) {
	if index.Len() != len(records) {
		return nil, fmt.Errorf("index has %d vectors, metadata has %d records: %w",
			index.Len(), len(records), ErrIndexMisaligned)
	}
	return &Corpus[T]{index: index, records: records}, nil
}

// Len returns the number of records
func (c *Corpus[T]) Len() int {
	return len(c.records)
}

// Dimension returns the index dimension
func (c *Corpus[T]) Dimension() int {
	return c.index.Dimension()
}

// Record returns the record at position, if any
func (c *Corpus[T]) Record(position int) (T, bool) {
	if position < 0 || position >= len(c.records) {
		var zero T
		return zero, false
	}
	return c.records[position], true
}

// LoadFlatIndex reads a FAISS flat index from storage
func LoadFlatIndex(ctx context.Context, store storage.Storage, key string) (*FlatIndex, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", key, err)
	}
	defer rc.Close()

	idx, err := ReadFlatIndex(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load index %s: %w", key, err)
	}
	return idx, nil
}

// LoadRecords reads a JSONL metadata sidecar from storage
func LoadRecords[T any](ctx context.Context, store storage.Storage, key string) ([]T, error) {
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata %s: %w", key, err)
	}
	records, err := ReadRecords[T](bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata %s: %w", key, err)
	}
	return records, nil
}

// ReadRecords decodes one JSON value per line
func ReadRecords[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)
	var records []T
	for {
		var rec T
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords encodes records as JSONL
func WriteRecords[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}
