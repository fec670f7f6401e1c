package datasource

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

type stubReader struct {
	docs []document.Document
	err  error
}

func (r stubReader) GetAllDocuments(ctx context.Context) ([]document.Document, error) {
	return r.docs, r.err
}

type stubSplitter struct {
	got   []document.Document
	nodes []document.TextNode
	err   error
}

func (s *stubSplitter) Split(documents []document.Document) ([]document.TextNode, error) {
	s.got = documents
	if s.err != nil {
		return nil, s.err
	}
	return s.nodes, nil
}

func newManager(reader stubReader, split *stubSplitter) *Manager[document.Document] {
	return &Manager[document.Document]{
		Name:     "stub",
		Reader:   reader,
		Splitter: split,
		Log:      logging.New(logr.Discard()),
	}
}

func TestManagerExtract_ThreadsReadCleanSplit(t *testing.T) {
	docs := []document.Document{
		document.New("first", nil),
		document.New("  \n\t ", nil),
		document.New("second", nil),
	}
	wantNodes := []document.TextNode{
		document.NodeFrom(docs[0], "first"),
		document.NodeFrom(docs[2], "second"),
	}
	split := &stubSplitter{nodes: wantNodes}

	raw, cleaned, nodes, err := newManager(stubReader{docs: docs}, split).Extract(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(raw) != 3 {
		t.Fatalf("raw must keep every fetched document, got %d", len(raw))
	}
	if len(cleaned) != 2 || cleaned[0].Text != "first" || cleaned[1].Text != "second" {
		t.Fatalf("cleaned must drop blank documents in order, got %v", cleaned)
	}
	if len(split.got) != 2 {
		t.Fatalf("splitter must receive the cleaned documents, got %d", len(split.got))
	}
	if len(nodes) != len(wantNodes) || nodes[0].ID != wantNodes[0].ID {
		t.Fatalf("nodes must come from the splitter unchanged")
	}
}

func TestManagerExtract_ReaderErrorAborts(t *testing.T) {
	split := &stubSplitter{}
	raw, cleaned, nodes, err := newManager(stubReader{err: errors.New("boom")}, split).Extract(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "stub: read documents") {
		t.Fatalf("error must name the datasource and stage, got %q", err)
	}
	if raw != nil || cleaned != nil || nodes != nil {
		t.Fatal("a failed read must not return partial results")
	}
	if split.got != nil {
		t.Fatal("splitter must not run after a failed read")
	}
}

func TestManagerExtract_SplitterErrorAborts(t *testing.T) {
	docs := []document.Document{document.New("content", nil)}
	split := &stubSplitter{err: errors.New("boom")}

	raw, cleaned, nodes, err := newManager(stubReader{docs: docs}, split).Extract(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "stub: split documents") {
		t.Fatalf("error must name the datasource and stage, got %q", err)
	}
	if raw != nil || cleaned != nil || nodes != nil {
		t.Fatal("a failed split must not return partial results")
	}
}

func TestManagerExtractNodes(t *testing.T) {
	docs := []document.Document{document.New("content", nil)}
	wantNodes := []document.TextNode{document.NodeFrom(docs[0], "content")}
	m := newManager(stubReader{docs: docs}, &stubSplitter{nodes: wantNodes})

	if got := m.DatasourceName(); got != "stub" {
		t.Fatalf("DatasourceName = %q", got)
	}
	nodes, err := m.ExtractNodes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].ID != wantNodes[0].ID {
		t.Fatal("ExtractNodes must return the splitter's nodes")
	}
}
