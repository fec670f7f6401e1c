package splitter

import (
	"strings"
	"testing"

	"github.com/ragline/ragline/internal/document"
)

const baseSentence = "This is a random sentence. "

// wordTokenizer counts whitespace-separated words as tokens, keeping the
// tests hermetic (no tiktoken vocabulary download).
func wordTokenizer(text string) []int {
	return make([]int, len(strings.Fields(text)))
}

type stubParser struct {
	texts map[string][]string
}

func (p stubParser) Parse(doc document.Document) ([]document.TextNode, error) {
	parts := p.texts[doc.ID]
	nodes := make([]document.TextNode, 0, len(parts))
	for _, part := range parts {
		nodes = append(nodes, document.NodeFrom(doc, part))
	}
	return nodes, nil
}

func newTestSplitter(t *testing.T, chunkSize, overlap int) *MarkdownSplitter {
	t.Helper()
	s, err := NewMarkdownSplitter(Config{
		ChunkSizeInTokens:    chunkSize,
		ChunkOverlapInTokens: overlap,
		Tokenize:             wordTokenizer,
	})
	if err != nil {
		t.Fatalf("NewMarkdownSplitter: %v", err)
	}
	return s
}

func TestNewMarkdownSplitter_RejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"nil tokenizer", Config{ChunkSizeInTokens: 100, ChunkOverlapInTokens: 10}},
		{"zero chunk size", Config{Tokenize: wordTokenizer, ChunkOverlapInTokens: 0}},
		{"negative overlap", Config{ChunkSizeInTokens: 100, ChunkOverlapInTokens: -1, Tokenize: wordTokenizer}},
		{"overlap equals size", Config{ChunkSizeInTokens: 100, ChunkOverlapInTokens: 100, Tokenize: wordTokenizer}},
		{"overlap above size", Config{ChunkSizeInTokens: 100, ChunkOverlapInTokens: 150, Tokenize: wordTokenizer}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMarkdownSplitter(tc.cfg); err == nil {
				t.Fatalf("expected config error")
			}
		})
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s := newTestSplitter(t, 100, 10)
	nodes, err := s.Split(nil)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestSplit_DocumentWithZeroStructuralNodes(t *testing.T) {
	s := newTestSplitter(t, 100, 10)
	doc := document.New("", document.Metadata{"title": "empty"})
	s.parser = stubParser{texts: map[string][]string{doc.ID: {}}}

	nodes, err := s.Split([]document.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestSplit_OversizedNodeIsSentenceSplit(t *testing.T) {
	const chunkSize = 100
	const overlap = 10
	s := newTestSplitter(t, chunkSize, overlap)

	sentenceLen := len(wordTokenizer(baseSentence))
	count := (chunkSize / sentenceLen) * 10
	body := strings.TrimSpace(strings.Repeat(baseSentence, count))

	doc := document.New(body, document.Metadata{"title": "big"})
	s.parser = stubParser{texts: map[string][]string{doc.ID: {body}}}

	nodes, err := s.Split([]document.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) < 2 {
		t.Fatalf("expected the oversized node to be split, got %d node(s)", len(nodes))
	}
	assertBounded(t, nodes, chunkSize)
	assertOnlyBaseSentences(t, nodes)
	for _, n := range nodes {
		if got := n.Metadata["title"]; got != "big" {
			t.Fatalf("metadata not carried over, got %v", got)
		}
	}
}

func TestSplit_SmallNodesAreMergedMaximally(t *testing.T) {
	const chunkSize = 100
	s := newTestSplitter(t, chunkSize, 10)

	sentence := strings.TrimSpace(baseSentence)
	sentenceLen := len(wordTokenizer(sentence))
	count := (chunkSize / sentenceLen) * 10

	parts := make([]string, count)
	for i := range parts {
		parts[i] = sentence + " "
	}
	doc := document.New(strings.Join(parts, ""), document.Metadata{"title": "small"})
	s.parser = stubParser{texts: map[string][]string{doc.ID: parts}}

	nodes, err := s.Split([]document.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	assertBounded(t, nodes, chunkSize)
	assertOnlyBaseSentences(t, nodes)

	// Greedy left-to-right merging is maximal: no output node could have
	// absorbed its successor without going over budget.
	for i := 0; i < len(nodes)-1; i++ {
		combined := len(wordTokenizer(nodes[i].Text)) + len(wordTokenizer(nodes[i+1].Text))
		if combined <= chunkSize {
			t.Fatalf("nodes %d and %d could still merge (%d tokens)", i, i+1, combined)
		}
	}

	// No content lost: every sentence occurrence survives exactly once.
	total := 0
	for _, n := range nodes {
		total += strings.Count(n.Text, sentence)
	}
	if total != count {
		t.Fatalf("expected %d sentence occurrences across chunks, got %d", count, total)
	}
}

func TestSplit_NodesFromDifferentDocumentsNeverMerge(t *testing.T) {
	s := newTestSplitter(t, 100, 10)

	docA := document.New("alpha", document.Metadata{"title": "a"})
	docB := document.New("beta", document.Metadata{"title": "b"})
	s.parser = stubParser{texts: map[string][]string{
		docA.ID: {"alpha "},
		docB.ID: {"beta "},
	}}

	nodes, err := s.Split([]document.Document{docA, docB})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes (one per document), got %d", len(nodes))
	}
	if !strings.Contains(nodes[0].Text, "alpha") || !strings.Contains(nodes[1].Text, "beta") {
		t.Fatalf("document order not preserved: %q, %q", nodes[0].Text, nodes[1].Text)
	}
}

func TestSplit_DuplicateTextsGetDistinctIDs(t *testing.T) {
	s := newTestSplitter(t, 3, 1)

	doc := document.New("", nil)
	s.parser = stubParser{texts: map[string][]string{
		doc.ID: {"one two three ", "one two three "},
	}}

	nodes, err := s.Split([]document.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	seen := map[string]bool{}
	for _, n := range nodes {
		if n.ID == "" {
			t.Fatalf("node without id")
		}
		if seen[n.ID] {
			t.Fatalf("duplicate node id %s", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestMergeSmallNodes_KeepsAccumulatorMetadata(t *testing.T) {
	s := newTestSplitter(t, 10, 2)

	first := document.NodeFrom(document.New("", document.Metadata{"title": "first"}), "one two ")
	second := document.NodeFrom(document.New("", document.Metadata{"title": "second"}), "three four ")

	merged := s.mergeSmallNodes([]document.TextNode{first, second})
	if len(merged) != 1 {
		t.Fatalf("expected a single merged node, got %d", len(merged))
	}
	if merged[0].Text != "one two three four " {
		t.Fatalf("unexpected merged text %q", merged[0].Text)
	}
	if merged[0].Metadata["title"] != "first" {
		t.Fatalf("merge must keep the accumulator's metadata, got %v", merged[0].Metadata["title"])
	}
	// Inputs must not be mutated by the merge pass.
	if first.Text != "one two " {
		t.Fatalf("input node mutated: %q", first.Text)
	}
}

func assertBounded(t *testing.T, nodes []document.TextNode, chunkSize int) {
	t.Helper()
	for i, n := range nodes {
		if got := len(wordTokenizer(n.Text)); got > chunkSize {
			t.Fatalf("node %d has %d tokens, budget is %d", i, got, chunkSize)
		}
	}
}

func assertOnlyBaseSentences(t *testing.T, nodes []document.TextNode) {
	t.Helper()
	// The sentence splitter may strip the ". " separator from a chunk's
	// final sentence, so match the sentence body and drop punctuation.
	body := strings.TrimSuffix(strings.TrimSpace(baseSentence), ".")
	for i, n := range nodes {
		leftover := strings.ReplaceAll(n.Text, body, "")
		leftover = strings.ReplaceAll(leftover, ".", "")
		leftover = strings.TrimSpace(strings.ReplaceAll(leftover, " ", ""))
		if leftover != "" {
			t.Fatalf("node %d contains unexpected content %q", i, leftover)
		}
	}
}
