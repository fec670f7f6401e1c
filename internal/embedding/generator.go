// Package embedding drives the end-to-end pipeline: extract nodes from the
// enabled datasources, embed them in batches and replace each datasource's
// chunk set in the vector store.
package embedding

import (
	"context"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/ragline/ragline/internal/datasource"
	"github.com/ragline/ragline/internal/datasource/confluence"
	"github.com/ragline/ragline/internal/datasource/hackernews"
	"github.com/ragline/ragline/internal/datasource/notion"
	"github.com/ragline/ragline/internal/datasource/pdf"
	"github.com/ragline/ragline/internal/db"
	dbmigrate "github.com/ragline/ragline/internal/db/migrate"
	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/embeddings"
	"github.com/ragline/ragline/internal/logging"
	"github.com/ragline/ragline/internal/splitter"
)

type Generator struct {
	cfg         Config
	db          *db.Database
	repo        *db.VectorRepository
	embedClient *embeddings.Client
	pipelines   []datasource.Extractor
	log         logging.Logger
}

func NewGenerator(cfg Config, database *db.Database, repo *db.VectorRepository, embed *embeddings.Client, pipelines []datasource.Extractor, log logging.Logger) *Generator {
	return &Generator{
		cfg:         cfg,
		db:          database,
		repo:        repo,
		embedClient: embed,
		pipelines:   pipelines,
		log:         log.WithName("generator"),
	}
}

// BuildPipelines constructs an extraction pipeline for every datasource the
// manifest enables. The optional only filter restricts the run to a single
// datasource by name.
func BuildPipelines(cfg Config, sources Sources, only string, log logging.Logger) ([]datasource.Extractor, error) {
	tokenize := splitter.TiktokenFunc(cfg.TokenizerModel)

	markdown, err := splitter.NewMarkdownSplitter(splitter.Config{
		ChunkSizeInTokens:    cfg.ChunkSize,
		ChunkOverlapInTokens: cfg.ChunkOverlap,
		Tokenize:             tokenize,
	})
	if err != nil {
		return nil, fmt.Errorf("build markdown splitter: %w", err)
	}

	var pipelines []datasource.Extractor

	if sources.Confluence.Enabled && wanted(only, "confluence") {
		reader := confluence.NewReader(confluence.ReaderConfig{
			BaseURL:     cfg.ConfluenceBaseURL,
			User:        cfg.ConfluenceUser,
			APIToken:    cfg.ConfluenceToken,
			SpaceKeys:   sources.Confluence.SpaceKeys,
			ExportLimit: cfg.ExportLimit,
		}, log)
		pipelines = append(pipelines, &datasource.Manager[document.Document]{
			Name:     "confluence",
			Reader:   reader,
			Splitter: confluence.NewSplitter(markdown),
			Log:      log,
		})
	}

	if sources.Notion.Enabled && wanted(only, "notion") {
		database, err := splitter.NewMarkdownSplitter(splitter.Config{
			ChunkSizeInTokens:    cfg.NotionDBChunkSize,
			ChunkOverlapInTokens: cfg.ChunkOverlap,
			Tokenize:             tokenize,
		})
		if err != nil {
			return nil, fmt.Errorf("build notion database splitter: %w", err)
		}
		reader := notion.NewReader(notion.ReaderConfig{
			Token:       cfg.NotionToken,
			ExportLimit: cfg.ExportLimit,
		}, log)
		pipelines = append(pipelines, &datasource.Manager[notion.Document]{
			Name:     "notion",
			Reader:   reader,
			Splitter: notion.NewSplitter(database, markdown),
			Log:      log,
		})
	}

	if sources.Hackernews.Enabled && wanted(only, "hackernews") {
		reader := hackernews.NewReader(hackernews.ReaderConfig{
			BaseURL:     cfg.HackernewsBaseURL,
			ExportLimit: cfg.ExportLimit,
		}, log)
		pipelines = append(pipelines, &datasource.Manager[document.Document]{
			Name:     "hackernews",
			Reader:   reader,
			Splitter: hackernews.NewSplitter(markdown),
			Log:      log,
		})
	}

	if sources.Pdf.Enabled && wanted(only, "pdf") {
		reader := pdf.NewReader(pdf.ReaderConfig{
			BasePath:     cfg.PdfBasePath,
			LayoutParser: cfg.PdfLayoutParser,
			ExportLimit:  cfg.ExportLimit,
		}, log)
		pipelines = append(pipelines, &datasource.Manager[document.Document]{
			Name:     "pdf",
			Reader:   reader,
			Splitter: pdf.NewSplitter(markdown),
			Log:      log,
		})
	}

	return pipelines, nil
}

func wanted(only, name string) bool {
	return only == "" || only == name
}

// Run ingests every configured datasource sequentially. A datasource
// failure aborts the run; nothing from the failed datasource is persisted.
func (g *Generator) Run(ctx context.Context) error {
	if err := dbmigrate.EnsureCurrent(ctx, g.db.Bun(), "", g.cfg.AutoMigrate); err != nil {
		return err
	}

	if len(g.pipelines) == 0 {
		g.log.Info("no datasources enabled, nothing to do")
		return nil
	}

	for _, pipeline := range g.pipelines {
		if err := g.runDatasource(ctx, pipeline); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", pipeline.DatasourceName(), err)
		}
	}
	return nil
}

func (g *Generator) runDatasource(ctx context.Context, pipeline datasource.Extractor) error {
	name := pipeline.DatasourceName()

	nodes, err := pipeline.ExtractNodes(ctx)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		g.log.Info("no nodes extracted, keeping stored chunks", "datasource", name)
		return nil
	}

	writer, err := g.repo.NewChunkBatchWriter(ctx, name)
	if err != nil {
		return fmt.Errorf("create batch writer: %w", err)
	}
	defer writer.Rollback()

	batchSize := g.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	for start := 0; start < len(nodes); start += batchSize {
		end := start + batchSize
		if end > len(nodes) {
			end = len(nodes)
		}
		batch := nodes[start:end]

		inputs := make([]string, len(batch))
		for i, node := range batch {
			inputs[i] = node.EmbedText()
		}

		vectors, err := g.embedClient.EmbedTexts(ctx, inputs)
		if err != nil {
			return fmt.Errorf("embed batch starting at node %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embed batch starting at node %d: got %d vectors for %d inputs", start, len(vectors), len(batch))
		}

		chunks := make([]*db.ChunkEmbedding, len(batch))
		for i, node := range batch {
			chunks[i] = g.toChunk(name, node, vectors[i])
		}
		if err := writer.Add(ctx, chunks...); err != nil {
			return fmt.Errorf("store batch starting at node %d: %w", start, err)
		}
	}

	if err := writer.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunks: %w", err)
	}

	g.log.Info("datasource ingested", "datasource", name, "chunks", writer.Count())
	return nil
}

func (g *Generator) toChunk(name string, node document.TextNode, vector []float32) *db.ChunkEmbedding {
	chunk := &db.ChunkEmbedding{
		ID:             node.ID,
		Datasource:     name,
		ChunkText:      node.Text,
		Metadata:       node.Metadata,
		Embedding:      pgvector.NewVector(vector),
		EmbeddingModel: g.cfg.EmbeddingModel,
	}
	if title, ok := node.Metadata["title"].(string); ok {
		chunk.Title = title
	}
	if url, ok := node.Metadata["url"].(string); ok && url != "" {
		chunk.SourceURL = &url
	}
	return chunk
}
