// Package hackernews ingests Hacker News stories. A story document is the
// degenerate single-paragraph case: its text is just the title and URL.
package hackernews

import (
	"fmt"

	"github.com/ragline/ragline/internal/document"
)

// Story is one item from the Hacker News API.
type Story struct {
	ID    int64
	Type  string
	Title string
	URL   string
}

// FromStory synthesizes a document whose text is "{title} {url}" and whose
// metadata carries the story identity plus the computed permalink.
func FromStory(story Story) document.Document {
	return document.New(
		story.Title+" "+story.URL,
		document.Metadata{
			"type":  story.Type,
			"id":    story.ID,
			"title": story.Title,
			"url":   fmt.Sprintf("https://news.ycombinator.com/item?id=%d", story.ID),
		},
	)
}
