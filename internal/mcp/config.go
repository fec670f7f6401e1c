package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ragline/ragline/internal/db"
	"github.com/ragline/ragline/internal/embedding"
	"github.com/ragline/ragline/internal/embeddings"
	"github.com/ragline/ragline/internal/logging"
	"github.com/ragline/ragline/internal/mcp/tools"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Database     *db.Database
	Log          logging.Logger
}

func DefaultConfig(log logging.Logger) (Config, error) {
	cfg, err := embedding.LoadConfig()
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	database, err := db.NewDatabase(db.Config{DSN: cfg.PostgresURL})
	if err != nil {
		return Config{}, fmt.Errorf("connect database: %w", err)
	}

	embedClient, err := embeddings.NewClient(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EmbedCallTimeout, log)
	if err != nil {
		return Config{}, fmt.Errorf("create embedding client: %w", err)
	}

	repo := db.NewVectorRepository(database)
	searchService := tools.NewDBSearchService(repo, embedClient)

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"search_chunks":    &tools.SearchChunksHandler{Service: searchService},
			"list_datasources": &tools.ListDatasourcesHandler{Service: searchService},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Database: database,
		Log:      log,
	}, nil
}
