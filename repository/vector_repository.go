package repository

import (
	"context"
	"fmt"
	"regexp"

	"themisai-backend/vectorindex"

	"github.com/pgvector/pgvector-go"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// VectorRepository serves a positional vector index from a pgvector table
// with columns (position int primary key, embedding vector(d))
type VectorRepository struct {
	db        DB
	table     string
	dimension int
	count     int
}

// NewVectorRepository opens an existing table and records its size and dimension
func NewVectorRepository(ctx context.Context, db DB, table string) (*VectorRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	r := &VectorRepository{db: db, table: table}
	query := fmt.Sprintf(`SELECT COUNT(*), COALESCE(MAX(vector_dims(embedding)), 0) FROM %s`, table)
	if err := db.QueryRow(ctx, query).Scan(&r.count, &r.dimension); err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	if r.count > 0 && r.dimension == 0 {
		return nil, fmt.Errorf("table %s has rows without embeddings", table)
	}
	return r, nil
}

// Len returns the number of stored vectors
func (r *VectorRepository) Len() int {
	return r.count
}

// Dimension returns the vector dimension
func (r *VectorRepository) Dimension() int {
	return r.dimension
}

// Search orders by negative inner product, so the best match comes first
func (r *VectorRepository) Search(ctx context.Context, query []float32, k int) ([]vectorindex.Hit, error) {
	if len(query) != r.dimension {
		return nil, fmt.Errorf("query has %d dims, table has %d: %w", len(query), r.dimension, vectorindex.ErrDimensionMismatch)
	}
	if k <= 0 {
		return []vectorindex.Hit{}, nil
	}

	sql := fmt.Sprintf(`
		SELECT position, (embedding <#> $1::vector) * -1 AS similarity
		FROM %s
		ORDER BY embedding <#> $1::vector, position
		LIMIT $2`, r.table)

	rows, err := r.db.Query(ctx, sql, pgvector.NewVector(query), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", r.table, err)
	}
	defer rows.Close()

	hits := make([]vectorindex.Hit, 0, k)
	for rows.Next() {
		var (
			position   int
			similarity float64
		)
		if err := rows.Scan(&position, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		hits = append(hits, vectorindex.Hit{Position: position, Similarity: float32(similarity)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hits: %w", err)
	}
	return hits, nil
}

// CreateVectorTable drops and recreates a vector table
func CreateVectorTable(ctx context.Context, db DB, table string, dimension int) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name: %q", table)
	}
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension: %d", dimension)
	}

	statements := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf("DROP TABLE IF EXISTS %s", table),
		fmt.Sprintf("CREATE TABLE %s (position INTEGER PRIMARY KEY, embedding vector(%d) NOT NULL)", table, dimension),
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

// InsertVectors stores vectors at positions offset, offset+1, ...
func InsertVectors(ctx context.Context, db DB, table string, offset int, vectors [][]float32) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name: %q", table)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (position, embedding) VALUES ($1, $2::vector)", table)
	for i, v := range vectors {
		if _, err := db.Exec(ctx, stmt, offset+i, pgvector.NewVector(v)); err != nil {
			return fmt.Errorf("failed to insert vector %d: %w", offset+i, err)
		}
	}
	return nil
}

var _ vectorindex.Searcher = (*VectorRepository)(nil)
