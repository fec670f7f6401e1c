package db

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// ChunkEmbedding is one embedded text chunk. The ID is the node's uuid;
// metadata carries the node's embed-visible key/value pairs as jsonb.
type ChunkEmbedding struct {
	bun.BaseModel `bun:"table:chunk_embeddings"`

	ID             string          `bun:"id,pk"`
	Datasource     string          `bun:"datasource"`
	Title          string          `bun:"title"`
	SourceURL      *string         `bun:"source_url,nullzero"`
	ChunkText      string          `bun:"chunk_text"`
	Metadata       map[string]any  `bun:"metadata,type:jsonb"`
	Embedding      pgvector.Vector `bun:"embedding"` // vector(768)
	EmbeddingModel string          `bun:"embedding_model"`
	UpdatedAt      time.Time       `bun:"updated_at,nullzero,default:now()"`
}
