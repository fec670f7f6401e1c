package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ragline/ragline/internal/config"
	"github.com/ragline/ragline/internal/db"
	"github.com/ragline/ragline/internal/embedding"
	"github.com/ragline/ragline/internal/embeddings"
	"github.com/ragline/ragline/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embedding pipeline CLI (Confluence, Notion, Hacker News, PDF)",
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Ingest every datasource enabled in the sources manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline("")
	},
}

func datasourceCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(name)
		},
	}
}

func runPipeline(only string) error {
	cfg, err := embedding.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.New(logging.ForLevel(config.LogLevel()))

	sources, err := embedding.LoadSources(cfg.SourcesFile)
	if err != nil {
		return err
	}

	pipelines, err := embedding.BuildPipelines(cfg, sources, only, log)
	if err != nil {
		return err
	}

	database, err := db.NewDatabase(db.Config{DSN: cfg.PostgresURL})
	if err != nil {
		return err
	}
	defer database.Close()

	embedClient, err := embeddings.NewClient(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EmbedCallTimeout, log)
	if err != nil {
		return err
	}

	repo := db.NewVectorRepository(database)
	generator := embedding.NewGenerator(cfg, database, repo, embedClient, pipelines, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()

	return generator.Run(ctx)
}

func main() {
	config.Init(rootCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(datasourceCmd("confluence", "Ingest Confluence spaces"))
	rootCmd.AddCommand(datasourceCmd("notion", "Ingest Notion pages and databases"))
	rootCmd.AddCommand(datasourceCmd("hackernews", "Ingest Hacker News top stories"))
	rootCmd.AddCommand(datasourceCmd("pdf", "Ingest PDF files from the configured directory"))

	if err := rootCmd.Execute(); err != nil {
		logging.New(logging.DefaultLogger()).Error(err, "embed failed")
		os.Exit(1)
	}
}
