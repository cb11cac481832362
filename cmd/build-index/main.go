package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML configuration file",
			Value: "config.yaml",
		},
		&cli.StringFlag{
			Name:     "jsonl",
			Usage:    "input JSONL file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "index-key",
			Usage: "storage key of the flat index (defaults to the configured key)",
		},
		&cli.StringFlag{
			Name:  "metadata-key",
			Usage: "storage key of the metadata file (defaults to the configured key)",
		},
		&cli.StringFlag{
			Name:  "pgvector-table",
			Usage: "also copy the vectors into this Postgres table",
		},
		&cli.StringFlag{
			Name:  "embed-model",
			Usage: "embedding model (defaults to the configured model)",
		},
		&cli.IntFlag{
			Name:  "max-docs",
			Usage: "stop after this many input lines, 0 for all",
		},
	}

	app := &cli.Command{
		Name:  "build-index",
		Usage: "build the legal and lawyer search indexes",
		Commands: []*cli.Command{
			{
				Name:  "legal",
				Usage: "chunk, deduplicate and embed legal documents",
				Flags: append(commonFlags,
					&cli.BoolFlag{
						Name:  "no-chunk",
						Usage: "store each document as one chunk",
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Usage: "words per chunk",
						Value: 450,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "words shared by consecutive chunks",
						Value: 80,
					},
				),
				Action: legalAction,
			},
			{
				Name:   "lawyers",
				Usage:  "embed lawyer profiles",
				Flags:  commonFlags,
				Action: lawyersAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "build-index: %v\n", err)
		os.Exit(1)
	}
}
