package confluence

import (
	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/splitter"
)

// Splitter chunks Confluence documents through a single markdown splitter.
type Splitter struct {
	markdown *splitter.MarkdownSplitter
}

func NewSplitter(markdown *splitter.MarkdownSplitter) *Splitter {
	return &Splitter{markdown: markdown}
}

func (s *Splitter) Split(documents []document.Document) ([]document.TextNode, error) {
	return s.markdown.Split(documents)
}
