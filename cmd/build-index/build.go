package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"themisai-backend/config"
	"themisai-backend/llm"
	"themisai-backend/logger"
	"themisai-backend/repository"
	"themisai-backend/storage"
	"themisai-backend/vectorindex"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"
)

const maxLineBytes = 64 * 1024 * 1024

// builder carries what both subcommands need
type builder struct {
	cfg      *config.Config
	log      logger.Logger
	store    storage.Storage
	provider *llm.Provider
	embedder llm.Embedder
}

// newBuilder loads configuration and opens the embedder. corpusModel picks the
// configured model of the corpus being built; --embed-model overrides it.
func newBuilder(ctx context.Context, cmd *cli.Command, corpusModel func(*config.Config) string) (*builder, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	logger.SetDefault(log)

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.Chat, cfg.Embedder)
	if err != nil {
		return nil, err
	}

	model := firstNonEmpty(cmd.String("embed-model"), corpusModel(cfg))
	embedder, err := provider.Embedder(model)
	if err != nil {
		provider.Close()
		return nil, err
	}
	log.Info("embedding with", "provider", cfg.Embedder.Provider, "model", model, "dimension", embedder.Dimension())

	return &builder{cfg: cfg, log: log, store: store, provider: provider, embedder: embedder}, nil
}

func (b *builder) Close() error {
	return b.provider.Close()
}

// readLines calls fn for every non-empty line, up to maxDocs lines when maxDocs > 0
func readLines(path string, maxDocs int, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineBytes)
	n := 0
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		n++
		if maxDocs > 0 && n > maxDocs {
			break
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// embedAll embeds texts in order into a flat index
func (b *builder) embedAll(ctx context.Context, texts []string) (*vectorindex.FlatIndex, [][]float32, error) {
	index, err := vectorindex.NewFlatIndex(b.embedder.Dimension())
	if err != nil {
		return nil, nil, err
	}

	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vec, err := b.embedder.Embed(ctx, text)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		vectors = append(vectors, vec)
		if (i+1)%100 == 0 || i+1 == len(texts) {
			b.log.Info("embedded", "done", i+1, "total", len(texts))
		}
	}
	if err := index.Add(vectors...); err != nil {
		return nil, nil, err
	}
	return index, vectors, nil
}

// publish writes metadata, the flat index and optionally the pgvector table
func (b *builder) publish(ctx context.Context, cmd *cli.Command, idx config.IndexConfig, index *vectorindex.FlatIndex, vectors [][]float32, writeMeta func(io.Writer) error) error {
	metaKey := firstNonEmpty(cmd.String("metadata-key"), idx.MetadataKey)
	indexKey := firstNonEmpty(cmd.String("index-key"), idx.IndexKey)

	var meta bytes.Buffer
	if err := writeMeta(&meta); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := b.store.Put(ctx, metaKey, &meta); err != nil {
		return fmt.Errorf("failed to write %s: %w", metaKey, err)
	}
	b.log.Info("metadata written", "key", metaKey)

	var raw bytes.Buffer
	if err := index.Write(&raw); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := b.store.Put(ctx, indexKey, &raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", indexKey, err)
	}
	b.log.Info("index written", "key", indexKey, "vectors", index.Len())

	if table := cmd.String("pgvector-table"); table != "" {
		if err := b.copyToPgvector(ctx, table, vectors); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) copyToPgvector(ctx context.Context, table string, vectors [][]float32) error {
	pool, err := pgxpool.New(ctx, b.cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := repository.CreateVectorTable(ctx, pool, table, b.embedder.Dimension()); err != nil {
		return err
	}

	const batch = 500
	for start := 0; start < len(vectors); start += batch {
		end := min(start+batch, len(vectors))
		if err := repository.InsertVectors(ctx, pool, table, start, vectors[start:end]); err != nil {
			return err
		}
	}
	b.log.Info("vectors copied to pgvector", "table", table, "rows", len(vectors))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
