// Package datasource defines the contracts every content origin implements
// and the extraction pipeline that threads them together.
package datasource

import (
	"context"
	"fmt"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

// TextHolder is the minimal document shape the pipeline needs: access to
// the raw content for cleaning.
type TextHolder interface {
	Content() string
}

// Reader retrieves all documents from one content origin. Implementations
// own retry/backoff and export limits; the pipeline only sees materialized
// document lists.
type Reader[D TextHolder] interface {
	GetAllDocuments(ctx context.Context) ([]D, error)
}

// Splitter turns cleaned documents into token-bounded text nodes.
type Splitter[D TextHolder] interface {
	Split(documents []D) ([]document.TextNode, error)
}

// Manager runs the extract pipeline for one datasource:
// read -> clean -> split.
type Manager[D TextHolder] struct {
	Name     string
	Reader   Reader[D]
	Splitter Splitter[D]
	Log      logging.Logger
}

// Extract retrieves, cleans and splits the datasource's content. It returns
// the raw documents, the cleaned documents and the nodes ready for
// embedding. Any failure aborts the whole datasource run; there is no
// partial-success mode.
func (m *Manager[D]) Extract(ctx context.Context) ([]D, []D, []document.TextNode, error) {
	raw, err := m.Reader.GetAllDocuments(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: read documents: %w", m.Name, err)
	}
	m.Log.Info("documents fetched", "datasource", m.Name, "count", len(raw))

	cleaned := Clean(raw)
	if dropped := len(raw) - len(cleaned); dropped > 0 {
		m.Log.Debug("empty documents dropped", "datasource", m.Name, "count", dropped)
	}

	nodes, err := m.Splitter.Split(cleaned)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: split documents: %w", m.Name, err)
	}
	m.Log.Info("documents split", "datasource", m.Name, "nodes", len(nodes))

	return raw, cleaned, nodes, nil
}

// Extractor erases the document type so the pipeline can hold managers for
// heterogeneous datasources in one slice.
type Extractor interface {
	DatasourceName() string
	ExtractNodes(ctx context.Context) ([]document.TextNode, error)
}

// DatasourceName implements Extractor.
func (m *Manager[D]) DatasourceName() string { return m.Name }

// ExtractNodes implements Extractor, discarding the intermediate document
// lists.
func (m *Manager[D]) ExtractNodes(ctx context.Context) ([]document.TextNode, error) {
	_, _, nodes, err := m.Extract(ctx)
	return nodes, err
}
