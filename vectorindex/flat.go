package vectorindex

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
)

// FAISS serialisation constants for IndexFlatIP
const (
	flatIPFourCC        = "IxFI"
	metricInnerProduct  = int32(0)
	faissHeaderDummy    = int64(1 << 20)
	maxSupportedVectors = 1 << 31
)

var (
	// ErrUnsupportedIndex is returned for index files that are not a flat inner-product index
	ErrUnsupportedIndex = errors.New("unsupported index format")
	// ErrDimensionMismatch is returned when a vector does not match the index dimension
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Hit is one search result: the ordinal position in the index and its inner product with the query
type Hit struct {
	Position   int
	Similarity float32
}

// Searcher is a read-only similarity index addressed by ordinal position
type Searcher interface {
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)
	Len() int
	Dimension() int
}

// FlatIndex is a brute-force inner-product index over unit vectors.
// It is safe for concurrent searches.
type FlatIndex struct {
	mu        sync.RWMutex
	dimension int
	vectors   []float32 // row-major, len = n*dimension
}

// NewFlatIndex creates an empty index of the given dimension
func NewFlatIndex(dimension int) (*FlatIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dimension)
	}
	return &FlatIndex{dimension: dimension}, nil
}

// Dimension returns the vector dimension
func (f *FlatIndex) Dimension() int {
	return f.dimension
}

// Len returns the number of stored vectors
func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors) / f.dimension
}

// Add appends vectors. Positions are assigned in insertion order.
func (f *FlatIndex) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != f.dimension {
			return fmt.Errorf("vector %d has %d dims, index has %d: %w", i, len(v), f.dimension, ErrDimensionMismatch)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range vectors {
		f.vectors = append(f.vectors, v...)
	}
	return nil
}

// Search returns the k highest inner products, best first. Equal scores keep position order.
func (f *FlatIndex) Search(_ context.Context, query []float32, k int) ([]Hit, error) {
	if len(query) != f.dimension {
		return nil, fmt.Errorf("query has %d dims, index has %d: %w", len(query), f.dimension, ErrDimensionMismatch)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.vectors) / f.dimension
	if k <= 0 || n == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		row := f.vectors[i*f.dimension : (i+1)*f.dimension]
		hits[i] = Hit{Position: i, Similarity: dot(row, query)}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if k > n {
		k = n
	}
	return hits[:k], nil
}

// ReadFlatIndex decodes a FAISS IndexFlatIP file
func ReadFlatIndex(r io.Reader) (*FlatIndex, error) {
	br := bufio.NewReader(r)

	fourcc := make([]byte, 4)
	if _, err := io.ReadFull(br, fourcc); err != nil {
		return nil, fmt.Errorf("failed to read index header: %w", err)
	}
	if string(fourcc) != flatIPFourCC {
		return nil, fmt.Errorf("fourcc %q: %w", fourcc, ErrUnsupportedIndex)
	}

	var header struct {
		Dimension  int32
		NTotal     int64
		Dummy1     int64
		Dummy2     int64
		IsTrained  uint8
		MetricType int32
	}
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read index header: %w", err)
	}
	if header.MetricType != metricInnerProduct {
		return nil, fmt.Errorf("metric type %d: %w", header.MetricType, ErrUnsupportedIndex)
	}
	if header.Dimension <= 0 || header.NTotal < 0 || header.NTotal > maxSupportedVectors {
		return nil, fmt.Errorf("invalid header d=%d ntotal=%d: %w", header.Dimension, header.NTotal, ErrUnsupportedIndex)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read vector count: %w", err)
	}
	if count != uint64(header.NTotal)*uint64(header.Dimension) {
		return nil, fmt.Errorf("payload has %d floats, header expects %d x %d: %w",
			count, header.NTotal, header.Dimension, ErrUnsupportedIndex)
	}

	vectors := make([]float32, count)
	if err := binary.Read(br, binary.LittleEndian, vectors); err != nil {
		return nil, fmt.Errorf("failed to read vectors: %w", err)
	}

	return &FlatIndex{dimension: int(header.Dimension), vectors: vectors}, nil
}

// Write encodes the index in the FAISS IndexFlatIP layout
func (f *FlatIndex) Write(w io.Writer) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(flatIPFourCC); err != nil {
		return err
	}

	header := []any{
		int32(f.dimension),
		int64(len(f.vectors) / f.dimension),
		faissHeaderDummy,
		faissHeaderDummy,
		uint8(1),
		metricInnerProduct,
		uint64(len(f.vectors)),
		f.vectors,
	}
	for _, v := range header {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("failed to write index: %w", err)
		}
	}
	return bw.Flush()
}

// Normalize scales v to unit length in place. Zero vectors are left untouched.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
