// Package notion ingests Notion pages and databases. Pages and databases
// have different chunk economics, so each document carries an ObjectType
// tag resolved at construction time and the splitter routes on it.
package notion

import (
	"fmt"
	"strings"

	"github.com/ragline/ragline/internal/document"
)

// ObjectType discriminates the two Notion content shapes.
type ObjectType int

const (
	ObjectDatabase ObjectType = iota
	ObjectPage
)

func (t ObjectType) String() string {
	switch t {
	case ObjectDatabase:
		return "database"
	case ObjectPage:
		return "page"
	default:
		return "unknown"
	}
}

// ParseObjectType resolves the API's object string once; routing later is a
// switch on the tag, not repeated string comparison.
func ParseObjectType(s string) (ObjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "database":
		return ObjectDatabase, nil
	case "page":
		return ObjectPage, nil
	default:
		return 0, fmt.Errorf("unknown notion object type %q", s)
	}
}

// Document couples the normalized document with its resolved object type.
type Document struct {
	document.Document
	Object ObjectType
}

// FromExport builds a Notion document from already-exported markdown text
// and the page/database metadata. The metadata is augmented with the
// datasource tag and date-only views of the two timestamps.
func FromExport(objectType ObjectType, metadata document.Metadata, text string) Document {
	meta := metadata.Clone()
	if meta == nil {
		meta = document.Metadata{}
	}
	meta["datasource"] = "notion"
	meta["type"] = objectType.String()
	if created, ok := meta["created_time"].(string); ok {
		meta["created_date"] = dateOnly(created)
	}
	if edited, ok := meta["last_edited_time"].(string); ok {
		meta["last_edited_date"] = dateOnly(edited)
	}
	return Document{
		Document: document.New(text, meta),
		Object:   objectType,
	}
}

func dateOnly(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}
