package document

import (
	"reflect"
	"strings"
	"testing"
)

func TestExcludedKeys_AreComplementOfAllowList(t *testing.T) {
	doc := New("body", Metadata{
		"title":            "Page",
		"created_time":     "2024-03-01T10:00:00Z",
		"last_edited_time": "2024-03-02T10:00:00Z",
		"url":              "https://example.com/page",
		"datasource":       "confluence",
	})

	want := []string{"datasource", "url"}
	if got := doc.ExcludedEmbedMetadataKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("excluded embed keys = %v, want %v", got, want)
	}
	if got := doc.ExcludedLLMMetadataKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("excluded llm keys = %v, want %v", got, want)
	}
}

func TestExcludedKeys_TrackMetadataMutation(t *testing.T) {
	doc := New("body", Metadata{"title": "Page"})
	if got := doc.ExcludedEmbedMetadataKeys(); len(got) != 0 {
		t.Fatalf("expected no excluded keys, got %v", got)
	}

	doc.Metadata["space"] = "ENG"
	if got := doc.ExcludedEmbedMetadataKeys(); !reflect.DeepEqual(got, []string{"space"}) {
		t.Fatalf("excluded keys not recomputed: %v", got)
	}
}

func TestNodeFrom_CopiesMetadataAndMintsID(t *testing.T) {
	doc := New("body", Metadata{"title": "Page"})
	node := NodeFrom(doc, "chunk")

	if node.ID == doc.ID || node.ID == "" {
		t.Fatalf("node id %q must be fresh and distinct from document id %q", node.ID, doc.ID)
	}
	node.Metadata["title"] = "changed"
	if doc.Metadata["title"] != "Page" {
		t.Fatalf("node metadata must not alias the document's")
	}
}

func TestDerive_FreshIDPerSubNode(t *testing.T) {
	doc := New("body", nil)
	node := NodeFrom(doc, "chunk")
	a := node.Derive("left")
	b := node.Derive("right")
	if a.ID == b.ID || a.ID == node.ID {
		t.Fatalf("derived nodes must not share ids: %q %q %q", node.ID, a.ID, b.ID)
	}
}

func TestEmbedText_RendersAllowListedMetadataOnly(t *testing.T) {
	doc := New("the chunk body", Metadata{
		"title":      "Design Doc",
		"datasource": "confluence",
	})
	node := NodeFrom(doc, doc.Text)

	text := node.EmbedText()
	if !strings.Contains(text, "title: Design Doc") {
		t.Fatalf("allow-listed metadata missing from embed text: %q", text)
	}
	if strings.Contains(text, "datasource") {
		t.Fatalf("excluded metadata leaked into embed text: %q", text)
	}
	if !strings.HasSuffix(text, "the chunk body") {
		t.Fatalf("chunk body must terminate embed text: %q", text)
	}
}
