package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ragline/ragline/internal/db"
	"github.com/ragline/ragline/internal/embeddings"
	"github.com/ragline/ragline/internal/mcp/tools/types"
)

// DBSearchService answers the search tools straight from the vector store.
type DBSearchService struct {
	Repository  *db.VectorRepository
	EmbedClient *embeddings.Client
}

func NewDBSearchService(repo *db.VectorRepository, embed *embeddings.Client) *DBSearchService {
	return &DBSearchService{Repository: repo, EmbedClient: embed}
}

func (s *DBSearchService) SearchChunks(ctx context.Context, query string, limit int, datasource string) ([]types.ChunkResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.ChunkResult{}, nil
	}

	vectors, err := s.EmbedClient.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.ChunkResult{}, nil
	}

	rows, err := s.Repository.SearchChunks(ctx, vectors[0], limit, datasource)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	results := make([]types.ChunkResult, 0, len(rows))
	for _, row := range rows {
		similarity := 1 - (row.Distance / 2.0)
		results = append(results, types.ChunkResult{
			ID:         row.ID,
			Datasource: row.Datasource,
			Title:      row.Title,
			SourceURL:  row.SourceURL,
			Snippet:    row.Snippet,
			Metadata:   row.Metadata,
			Similarity: similarity,
		})
	}
	return results, nil
}

func (s *DBSearchService) ListDatasources(ctx context.Context) ([]types.DatasourceInfo, error) {
	counts, err := s.Repository.CountByDatasource(ctx)
	if err != nil {
		return nil, fmt.Errorf("count datasources: %w", err)
	}

	infos := make([]types.DatasourceInfo, 0, len(counts))
	for _, c := range counts {
		infos = append(infos, types.DatasourceInfo{
			Name:      c.Datasource,
			Chunks:    c.Chunks,
			UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
		})
	}
	return infos, nil
}
