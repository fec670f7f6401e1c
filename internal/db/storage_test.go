package db

import (
	"context"
	"errors"
	"testing"
)

func TestChunkBatchWriter_RollbackRunsAfterFailedCommit(t *testing.T) {
	rolledBack := false
	w := &ChunkBatchWriter{
		commit:   func() error { return errors.New("connection reset") },
		rollback: func() error { rolledBack = true; return nil },
	}

	if err := w.Commit(context.Background()); err == nil {
		t.Fatal("expected commit error")
	}
	if err := w.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if !rolledBack {
		t.Fatal("rollback must reach the transaction after a failed commit")
	}
}

func TestChunkBatchWriter_RollbackNoopAfterCommit(t *testing.T) {
	rolledBack := false
	w := &ChunkBatchWriter{
		commit:   func() error { return nil },
		rollback: func() error { rolledBack = true; return nil },
	}

	if err := w.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := w.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if rolledBack {
		t.Fatal("rollback must not touch the transaction after a successful commit")
	}
}
