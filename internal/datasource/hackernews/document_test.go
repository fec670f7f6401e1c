package hackernews

import (
	"testing"
)

func TestFromStory(t *testing.T) {
	doc := FromStory(Story{
		ID:    8863,
		Type:  "story",
		Title: "My YC app: Dropbox",
		URL:   "http://www.getdropbox.com/u/2/screencast.html",
	})

	if doc.Text != "My YC app: Dropbox http://www.getdropbox.com/u/2/screencast.html" {
		t.Fatalf("unexpected text %q", doc.Text)
	}
	if doc.Metadata["url"] != "https://news.ycombinator.com/item?id=8863" {
		t.Fatalf("permalink = %v", doc.Metadata["url"])
	}
	if doc.Metadata["id"] != int64(8863) {
		t.Fatalf("id = %v", doc.Metadata["id"])
	}
	if doc.Metadata["type"] != "story" {
		t.Fatalf("type = %v", doc.Metadata["type"])
	}
}

func TestFromStory_ExcludedKeys(t *testing.T) {
	doc := FromStory(Story{ID: 1, Type: "story", Title: "Title", URL: "https://example.com"})

	excluded := map[string]bool{}
	for _, k := range doc.ExcludedEmbedMetadataKeys() {
		excluded[k] = true
	}
	if excluded["title"] {
		t.Fatal("title must stay visible to the embedding model")
	}
	for _, hidden := range []string{"type", "id", "url"} {
		if !excluded[hidden] {
			t.Fatalf("key %s must be excluded", hidden)
		}
	}
}
