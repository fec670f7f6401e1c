// Package splitter normalizes structurally-parsed markdown into
// token-bounded chunks: oversized structural nodes are re-split along
// sentence boundaries, adjacent undersized nodes are merged back together.
package splitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ragline/ragline/internal/document"
)

// Config carries the token budget for one MarkdownSplitter.
type Config struct {
	// ChunkSizeInTokens is the upper bound on a chunk's tokenized length.
	// Soft only for irreducible structural units (a single sentence or
	// table row over budget).
	ChunkSizeInTokens int
	// ChunkOverlapInTokens is the repeated context between consecutive
	// sub-chunks of a forced split. Must stay below ChunkSizeInTokens or
	// secondary splitting cannot make progress.
	ChunkOverlapInTokens int
	// Tokenize measures text; only the token count is used.
	Tokenize TokenizeFunc
}

func (c Config) validate() error {
	if c.Tokenize == nil {
		return errors.New("tokenize func is required")
	}
	if c.ChunkSizeInTokens <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSizeInTokens)
	}
	if c.ChunkOverlapInTokens < 0 {
		return fmt.Errorf("chunk overlap must not be negative, got %d", c.ChunkOverlapInTokens)
	}
	if c.ChunkOverlapInTokens >= c.ChunkSizeInTokens {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			c.ChunkOverlapInTokens, c.ChunkSizeInTokens)
	}
	return nil
}

// MarkdownSplitter converts documents into token-bounded text nodes while
// preserving markdown structural boundaries where possible.
type MarkdownSplitter struct {
	chunkSize int
	tokenize  TokenizeFunc

	parser   NodeParser
	sentence SentenceSplitter
}

// NewMarkdownSplitter builds a splitter for the given token budget. The
// configuration is validated up front; an overlap at or above the chunk
// size is rejected rather than looping during secondary splits.
func NewMarkdownSplitter(cfg Config) (*MarkdownSplitter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("splitter config: %w", err)
	}
	count := CountFunc(cfg.Tokenize)
	return &MarkdownSplitter{
		chunkSize: cfg.ChunkSizeInTokens,
		tokenize:  cfg.Tokenize,
		parser:    newMarkdownNodeParser(cfg.ChunkSizeInTokens, count),
		sentence:  newSentenceSplitter(cfg.ChunkSizeInTokens, cfg.ChunkOverlapInTokens, count),
	}, nil
}

// Split processes each document independently: structural parse, secondary
// split of oversized nodes, greedy merge of undersized neighbors. Nodes
// from different documents are never merged together. An empty input
// yields an empty result.
func (s *MarkdownSplitter) Split(documents []document.Document) ([]document.TextNode, error) {
	var nodes []document.TextNode

	for _, doc := range documents {
		documentNodes, err := s.parser.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("parse document %s: %w", doc.ID, err)
		}
		documentNodes, err = s.splitBigNodes(documentNodes)
		if err != nil {
			return nil, fmt.Errorf("split document %s: %w", doc.ID, err)
		}
		nodes = append(nodes, s.mergeSmallNodes(documentNodes)...)
	}

	return nodes, nil
}

// splitBigNodes re-splits every node over the token budget through the
// sentence splitter; nodes within budget pass through unchanged.
func (s *MarkdownSplitter) splitBigNodes(documentNodes []document.TextNode) ([]document.TextNode, error) {
	out := make([]document.TextNode, 0, len(documentNodes))

	for _, node := range documentNodes {
		if len(s.tokenize(node.Text)) <= s.chunkSize {
			out = append(out, node)
			continue
		}
		subNodes, err := s.splitBigNode(node)
		if err != nil {
			return nil, err
		}
		out = append(out, subNodes...)
	}

	return out, nil
}

func (s *MarkdownSplitter) splitBigNode(node document.TextNode) ([]document.TextNode, error) {
	subTexts, err := s.sentence.SplitText(node.Text)
	if err != nil {
		return nil, fmt.Errorf("sentence split: %w", err)
	}
	subNodes := make([]document.TextNode, 0, len(subTexts))
	for _, subText := range subTexts {
		subNodes = append(subNodes, node.Derive(subText))
	}
	return subNodes, nil
}

// mergeSmallNodes greedily concatenates adjacent nodes while the combined
// text stays within the token budget. Strictly sequential, no lookahead;
// the accumulator's metadata is kept, the absorbed node's dropped. Token
// counts are always recomputed on the concatenated text; tokenization is
// not assumed to be additive.
func (s *MarkdownSplitter) mergeSmallNodes(documentNodes []document.TextNode) []document.TextNode {
	if len(documentNodes) == 0 {
		return nil
	}

	merged := make([]document.TextNode, 0, len(documentNodes))
	current := documentNodes[0]
	var text strings.Builder
	text.WriteString(current.Text)

	for _, node := range documentNodes[1:] {
		if len(s.tokenize(text.String()))+len(s.tokenize(node.Text)) <= s.chunkSize {
			text.WriteString(node.Text)
			continue
		}
		current.Text = text.String()
		merged = append(merged, current)
		current = node
		text.Reset()
		text.WriteString(node.Text)
	}

	current.Text = text.String()
	return append(merged, current)
}
