package notion

import (
	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/splitter"
)

// Splitter routes Notion documents to one of two independently configured
// markdown splitters: databases carry denser tabular content and get their
// own chunk budget.
type Splitter struct {
	database *splitter.MarkdownSplitter
	page     *splitter.MarkdownSplitter
}

func NewSplitter(database, page *splitter.MarkdownSplitter) *Splitter {
	return &Splitter{database: database, page: page}
}

// Split partitions the input by object type (stable order within each
// partition), runs each partition through its splitter and returns all
// database-derived nodes followed by all page-derived nodes. Original
// ordering across the two types is not preserved.
func (s *Splitter) Split(documents []Document) ([]document.TextNode, error) {
	var databases, pages []document.Document
	for _, doc := range documents {
		switch doc.Object {
		case ObjectDatabase:
			databases = append(databases, doc.Document)
		case ObjectPage:
			pages = append(pages, doc.Document)
		}
	}

	nodes, err := s.database.Split(databases)
	if err != nil {
		return nil, err
	}
	pageNodes, err := s.page.Split(pages)
	if err != nil {
		return nil, err
	}
	return append(nodes, pageNodes...), nil
}
