package main

import (
	"context"
	"io"

	"themisai-backend/config"
	"themisai-backend/ingest"
	"themisai-backend/models"
	"themisai-backend/vectorindex"

	"github.com/urfave/cli/v3"
)

func legalAction(ctx context.Context, cmd *cli.Command) error {
	b, err := newBuilder(ctx, cmd, func(cfg *config.Config) string { return cfg.Embedder.Model })
	if err != nil {
		return err
	}
	defer b.Close()

	opts := ingest.ChunkOptions{
		Disabled: cmd.Bool("no-chunk"),
		MaxWords: int(cmd.Int("max-tokens")),
		Overlap:  int(cmd.Int("overlap")),
	}

	var records []models.LegalChunk
	docs := 0
	err = readLines(cmd.String("jsonl"), int(cmd.Int("max-docs")), func(line []byte) error {
		docs++
		records = append(records, ingest.LegalRecords(ingest.ParseSourceDocument(line), opts)...)
		return nil
	})
	if err != nil {
		return err
	}

	chunked := len(records)
	records = ingest.Dedup(records)
	b.log.Info("legal corpus chunked", "documents", docs, "chunks", chunked, "unique", len(records))

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	index, vectors, err := b.embedAll(ctx, texts)
	if err != nil {
		return err
	}

	return b.publish(ctx, cmd, b.cfg.LegalIndex, index, vectors, func(w io.Writer) error {
		return vectorindex.WriteRecords(w, records)
	})
}
