package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"themisai-backend/config"
	"themisai-backend/logger"
	"themisai-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "YAML configuration file")
	vectorTables := flag.Bool("vector-tables", false, "also create empty pgvector tables for the configured pgvector backends")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.CreateSchema(ctx, pool); err != nil {
		log.Error("failed to create schema", "error", err)
		os.Exit(1)
	}
	log.Info("schema ready", "tables", "person, address, document_store")

	if !*vectorTables {
		return
	}
	for _, idx := range []config.IndexConfig{cfg.LegalIndex, cfg.LawyerIndex.IndexConfig} {
		if idx.Backend != config.BackendPgvector {
			continue
		}
		if err := repository.CreateVectorTable(ctx, pool, idx.PgvectorTable, cfg.Embedder.Dimension); err != nil {
			log.Error("failed to create vector table", "table", idx.PgvectorTable, "error", err)
			os.Exit(1)
		}
		log.Info("vector table created", "table", idx.PgvectorTable, "dimension", cfg.Embedder.Dimension)
	}
}
