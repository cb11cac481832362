package main

import (
	"context"
	"io"

	"themisai-backend/config"
	"themisai-backend/ingest"
	"themisai-backend/vectorindex"

	"github.com/urfave/cli/v3"
)

func lawyersAction(ctx context.Context, cmd *cli.Command) error {
	b, err := newBuilder(ctx, cmd, func(cfg *config.Config) string { return cfg.LawyerIndex.EmbedModel })
	if err != nil {
		return err
	}
	defer b.Close()

	var texts []string
	var metadata []map[string]any
	located := 0
	err = readLines(cmd.String("jsonl"), int(cmd.Int("max-docs")), func(line []byte) error {
		rec, err := ingest.ParseLawyerRecord(line)
		if err != nil {
			return err
		}
		if _, ok := rec.Lawyer.Location(); ok {
			located++
		}
		text := ingest.LawyerEmbeddingText(rec)
		texts = append(texts, text)
		metadata = append(metadata, rec.Metadata(text))
		return nil
	})
	if err != nil {
		return err
	}
	b.log.Info("lawyers loaded", "total", len(texts), "with_coordinates", located)

	index, vectors, err := b.embedAll(ctx, texts)
	if err != nil {
		return err
	}

	return b.publish(ctx, cmd, b.cfg.LawyerIndex.IndexConfig, index, vectors, func(w io.Writer) error {
		return vectorindex.WriteRecords(w, metadata)
	})
}
