// Package confluence ingests Confluence pages: the REST reader fetches page
// bodies as HTML, the document factory converts them to markdown and shapes
// the metadata, and the splitter chunks them through the shared markdown
// splitter.
package confluence

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/ragline/ragline/internal/document"
)

// Page is one Confluence page as returned by the content API.
type Page struct {
	ID       string
	Title    string
	BodyHTML string
	SpaceKey string
	WebUI    string
	Created  string // ISO-8601
	Updated  string // ISO-8601
}

// FromPage converts a Confluence page into a normalized Document: the HTML
// body becomes markdown and the metadata carries timestamps, identifiers
// and the computed page URL. Only title and the two timestamps are
// surfaced to the embedding model and the LLM context.
func FromPage(page Page, baseURL string) (document.Document, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(page.BodyHTML)
	if err != nil {
		return document.Document{}, fmt.Errorf("convert page %s body to markdown: %w", page.ID, err)
	}
	return document.New(markdown, metadataFor(page, baseURL)), nil
}

func metadataFor(page Page, baseURL string) document.Metadata {
	return document.Metadata{
		"created_time":     page.Created,
		"created_date":     dateOnly(page.Created),
		"datasource":       "confluence",
		"format":           "md",
		"last_edited_time": page.Updated,
		"last_edited_date": dateOnly(page.Updated),
		"page_id":          page.ID,
		"space":            page.SpaceKey,
		"title":            page.Title,
		"type":             "page",
		"url":              strings.TrimSuffix(baseURL, "/") + page.WebUI,
	}
}

func dateOnly(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}
