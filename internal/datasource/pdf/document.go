// Package pdf ingests PDF files from a local directory. Text and metadata
// come out of tabula; when the layout parser is enabled the first pages are
// additionally mined for the business fields stamped on offer documents.
package pdf

import (
	"github.com/ragline/ragline/internal/document"
)

// MetadataKeys is the fixed allow-list for PDF documents: file metadata
// plus the extracted business fields.
var MetadataKeys = []string{
	"title",
	"creation_date",
	"mod_date",
	"valid_until",
	"client_name",
	"offer_name",
	"project_lead",
}

// NewDocument builds a PDF document with the package's metadata allow-list.
func NewDocument(text string, metadata document.Metadata) document.Document {
	doc := document.New(text, metadata)
	doc.EmbedMetadataKeys = MetadataKeys
	doc.LLMMetadataKeys = MetadataKeys
	return doc
}
