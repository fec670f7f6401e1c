package db

import (
	"context"
	"database/sql"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type VectorRepository struct {
	db *bun.DB
}

func NewVectorRepository(database *Database) *VectorRepository {
	return &VectorRepository{db: database.Bun()}
}

type ChunkSearchRow struct {
	ChunkEmbedding `bun:",extend"`
	Snippet        string  `bun:"snippet"`
	Distance       float64 `bun:"distance"`
}

// SearchChunks runs a cosine-distance nearest-neighbour query, closest
// first. An empty datasource searches everything.
func (r *VectorRepository) SearchChunks(ctx context.Context, embedding []float32, limit int, datasource string) ([]ChunkSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []ChunkSearchRow
	q := r.db.NewSelect().Model(&results).
		Column("id", "datasource", "title", "source_url", "metadata", "embedding_model", "updated_at").
		ColumnExpr("substring(chunk_text for 400) AS snippet").
		ColumnExpr("embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		OrderExpr("distance").
		Limit(limit)
	if datasource != "" {
		q = q.Where("datasource = ?", datasource)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

type DatasourceCount struct {
	Datasource string    `bun:"datasource"`
	Chunks     int       `bun:"chunks"`
	UpdatedAt  time.Time `bun:"updated_at"`
}

func (r *VectorRepository) CountByDatasource(ctx context.Context) ([]DatasourceCount, error) {
	var rows []DatasourceCount
	err := r.db.NewSelect().Model((*ChunkEmbedding)(nil)).
		ColumnExpr("datasource").
		ColumnExpr("count(*) AS chunks").
		ColumnExpr("max(updated_at) AS updated_at").
		GroupExpr("datasource").
		OrderExpr("datasource").
		Scan(ctx, &rows)
	return rows, err
}

func (r *VectorRepository) CountChunks(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*ChunkEmbedding)(nil)).Count(ctx)
}

// ChunkBatchWriter replaces a datasource's chunks atomically: the delete
// and every insert share one transaction, so readers see either the old
// chunk set or the new one.
type ChunkBatchWriter struct {
	tx        bun.Tx
	commit    func() error
	rollback  func() error
	committed bool
	count     int
}

func (r *VectorRepository) NewChunkBatchWriter(ctx context.Context, datasource string) (*ChunkBatchWriter, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := tx.NewDelete().
		Model((*ChunkEmbedding)(nil)).
		Where("datasource = ?", datasource).
		Exec(ctx); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &ChunkBatchWriter{tx: tx, commit: tx.Commit, rollback: tx.Rollback}, nil
}

func (w *ChunkBatchWriter) Add(ctx context.Context, chunks ...*ChunkEmbedding) error {
	if len(chunks) == 0 {
		return nil
	}
	if _, err := w.tx.NewInsert().Model(&chunks).Exec(ctx); err != nil {
		return err
	}
	w.count += len(chunks)
	return nil
}

func (w *ChunkBatchWriter) Count() int {
	return w.count
}

func (w *ChunkBatchWriter) Commit(ctx context.Context) error {
	if err := w.commit(); err != nil {
		return err
	}
	w.committed = true
	return nil
}

// Rollback is safe to call after a successful Commit. A failed commit
// leaves the writer uncommitted so the deferred rollback still runs.
func (w *ChunkBatchWriter) Rollback() error {
	if w.committed {
		return nil
	}
	return w.rollback()
}
