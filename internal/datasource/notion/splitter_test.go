package notion

import (
	"strings"
	"testing"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/splitter"
)

func wordTokenizer(text string) []int {
	return make([]int, len(strings.Fields(text)))
}

func newSplitterPair(t *testing.T) *Splitter {
	t.Helper()
	database, err := splitter.NewMarkdownSplitter(splitter.Config{
		ChunkSizeInTokens:    50,
		ChunkOverlapInTokens: 5,
		Tokenize:             wordTokenizer,
	})
	if err != nil {
		t.Fatalf("database splitter: %v", err)
	}
	page, err := splitter.NewMarkdownSplitter(splitter.Config{
		ChunkSizeInTokens:    100,
		ChunkOverlapInTokens: 10,
		Tokenize:             wordTokenizer,
	})
	if err != nil {
		t.Fatalf("page splitter: %v", err)
	}
	return NewSplitter(database, page)
}

func TestSplit_PartitionsByObjectType(t *testing.T) {
	s := newSplitterPair(t)

	docs := []Document{
		FromExport(ObjectPage, document.Metadata{"title": "p1"}, "page one body"),
		FromExport(ObjectDatabase, document.Metadata{"title": "d1"}, "| a | b |"),
		FromExport(ObjectPage, document.Metadata{"title": "p2"}, "page two body"),
		FromExport(ObjectDatabase, document.Metadata{"title": "d2"}, "| c | d |"),
	}

	nodes, err := s.Split(docs)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatal("expected nodes")
	}

	// All database-derived nodes come first, in original relative order,
	// then all page-derived nodes.
	var order []string
	for _, n := range nodes {
		title, _ := n.Metadata["title"].(string)
		order = append(order, title)
	}
	firstPage := -1
	for i, title := range order {
		isPage := strings.HasPrefix(title, "p")
		if isPage && firstPage == -1 {
			firstPage = i
		}
		if !isPage && firstPage != -1 {
			t.Fatalf("database node %q found after page nodes: %v", title, order)
		}
	}
	assertRelativeOrder(t, order, "d1", "d2")
	assertRelativeOrder(t, order, "p1", "p2")
}

func TestSplit_NoDocumentDroppedOrDuplicated(t *testing.T) {
	s := newSplitterPair(t)

	docs := []Document{
		FromExport(ObjectDatabase, document.Metadata{"title": "d1"}, "alpha"),
		FromExport(ObjectPage, document.Metadata{"title": "p1"}, "beta"),
	}

	nodes, err := s.Split(docs)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	counts := map[string]int{}
	for _, n := range nodes {
		title, _ := n.Metadata["title"].(string)
		counts[title]++
	}
	if counts["d1"] != 1 || counts["p1"] != 1 {
		t.Fatalf("unexpected node counts: %v", counts)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s := newSplitterPair(t)
	nodes, err := s.Split(nil)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestParseObjectType(t *testing.T) {
	if got, err := ParseObjectType("database"); err != nil || got != ObjectDatabase {
		t.Fatalf("ParseObjectType(database) = %v, %v", got, err)
	}
	if got, err := ParseObjectType("Page"); err != nil || got != ObjectPage {
		t.Fatalf("ParseObjectType(Page) = %v, %v", got, err)
	}
	if _, err := ParseObjectType("workspace"); err == nil {
		t.Fatal("expected error for unknown object type")
	}
}

func TestFromExport_AugmentsMetadata(t *testing.T) {
	doc := FromExport(ObjectPage, document.Metadata{
		"title":            "Notes",
		"created_time":     "2024-05-01T08:00:00.000Z",
		"last_edited_time": "2024-05-03T12:00:00.000Z",
	}, "body")

	if doc.Metadata["datasource"] != "notion" {
		t.Fatalf("datasource tag missing: %v", doc.Metadata)
	}
	if doc.Metadata["created_date"] != "2024-05-01" {
		t.Fatalf("created_date = %v", doc.Metadata["created_date"])
	}
	if doc.Metadata["last_edited_date"] != "2024-05-03" {
		t.Fatalf("last_edited_date = %v", doc.Metadata["last_edited_date"])
	}
	if doc.Metadata["type"] != "page" {
		t.Fatalf("type = %v", doc.Metadata["type"])
	}
}

func assertRelativeOrder(t *testing.T, order []string, earlier, later string) {
	t.Helper()
	fi, li := -1, -1
	for i, v := range order {
		if v == earlier && fi == -1 {
			fi = i
		}
		if v == later {
			li = i
		}
	}
	if fi == -1 || li == -1 || fi > li {
		t.Fatalf("expected %s before %s in %v", earlier, later, order)
	}
}
