package splitter

import (
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/ragline/ragline/internal/document"
)

// NodeParser splits a document's text into structural nodes along natural
// markdown boundaries. It makes no size guarantees: an oversized heading
// section or table comes back as a single node.
type NodeParser interface {
	Parse(doc document.Document) ([]document.TextNode, error)
}

// markdownNodeParser delegates structural parsing to langchaingo's markdown
// splitter. Oversized sections are kept whole via a pass-through second
// splitter so that size normalization stays with the MarkdownSplitter.
type markdownNodeParser struct {
	s *textsplitter.MarkdownTextSplitter
}

func newMarkdownNodeParser(chunkSize int, lenFunc func(string) int) markdownNodeParser {
	return markdownNodeParser{
		s: textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithLenFunc(lenFunc),
			textsplitter.WithHeadingHierarchy(true),
			textsplitter.WithCodeBlocks(true),
			textsplitter.WithSecondSplitter(passThrough{}),
		),
	}
}

func (p markdownNodeParser) Parse(doc document.Document) ([]document.TextNode, error) {
	parts, err := p.s.SplitText(doc.Text)
	if err != nil {
		return nil, err
	}
	nodes := make([]document.TextNode, 0, len(parts))
	for _, part := range parts {
		nodes = append(nodes, document.NodeFrom(doc, part))
	}
	return nodes, nil
}

// passThrough satisfies textsplitter.TextSplitter without splitting.
type passThrough struct{}

func (passThrough) SplitText(text string) ([]string, error) {
	return []string{text}, nil
}
