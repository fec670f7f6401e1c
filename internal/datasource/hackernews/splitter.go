package hackernews

import (
	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/splitter"
)

// Splitter chunks story documents through a single markdown splitter. Story
// text has no markdown structure, so each document parses to one node.
type Splitter struct {
	markdown *splitter.MarkdownSplitter
}

func NewSplitter(markdown *splitter.MarkdownSplitter) *Splitter {
	return &Splitter{markdown: markdown}
}

func (s *Splitter) Split(documents []document.Document) ([]document.TextNode, error) {
	return s.markdown.Split(documents)
}
