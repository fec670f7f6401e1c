// Package document defines the normalized unit of ingested content shared by
// every datasource, and the token-bounded TextNode chunks produced from it.
package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Metadata maps string keys to scalar values extracted from a source record.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DefaultMetadataKeys is the allow-list applied to sources that do not
// declare their own: only these keys are surfaced to the embedding model
// and the LLM context.
var DefaultMetadataKeys = []string{"title", "created_time", "last_edited_time"}

// Document is a normalized unit of ingested content. Attachments are
// reserved for future use and always empty today.
type Document struct {
	ID          string
	Text        string
	Metadata    Metadata
	Attachments map[string]string

	// Allow-lists of metadata keys visible to the embedding model and the
	// LLM context. Exclusion lists are derived views, never stored.
	EmbedMetadataKeys []string
	LLMMetadataKeys   []string
}

// New builds a Document with a fresh identifier and the default metadata
// allow-lists.
func New(text string, metadata Metadata) Document {
	return Document{
		ID:                uuid.NewString(),
		Text:              text,
		Metadata:          metadata,
		Attachments:       map[string]string{},
		EmbedMetadataKeys: DefaultMetadataKeys,
		LLMMetadataKeys:   DefaultMetadataKeys,
	}
}

// Content returns the document's raw text. Satisfies the pipeline's
// TextHolder contract.
func (d Document) Content() string { return d.Text }

// ExcludedEmbedMetadataKeys returns the metadata keys hidden from the
// embedding model: every key present that is not on the allow-list. The
// result is recomputed from current metadata on each call.
func (d Document) ExcludedEmbedMetadataKeys() []string {
	return excludedKeys(d.Metadata, d.EmbedMetadataKeys)
}

// ExcludedLLMMetadataKeys returns the metadata keys hidden from the LLM
// context.
func (d Document) ExcludedLLMMetadataKeys() []string {
	return excludedKeys(d.Metadata, d.LLMMetadataKeys)
}

func excludedKeys(metadata Metadata, included []string) []string {
	allow := make(map[string]struct{}, len(included))
	for _, k := range included {
		allow[k] = struct{}{}
	}
	excluded := make([]string, 0, len(metadata))
	for k := range metadata {
		if _, ok := allow[k]; !ok {
			excluded = append(excluded, k)
		}
	}
	sort.Strings(excluded)
	return excluded
}

// TextNode is the final token-bounded unit of text handed to the embedding
// stage. Metadata and allow-lists are copied from the parent Document; the
// identifier is always fresh.
type TextNode struct {
	ID       string
	Text     string
	Metadata Metadata

	EmbedMetadataKeys []string
	LLMMetadataKeys   []string
}

// NodeFrom derives a TextNode carrying the document's metadata and
// allow-lists with a fresh identifier.
func NodeFrom(d Document, text string) TextNode {
	return TextNode{
		ID:                uuid.NewString(),
		Text:              text,
		Metadata:          d.Metadata.Clone(),
		EmbedMetadataKeys: d.EmbedMetadataKeys,
		LLMMetadataKeys:   d.LLMMetadataKeys,
	}
}

// Derive copies the node with a fresh identifier and replacement text.
// Used when an oversized node is broken into sub-nodes.
func (n TextNode) Derive(text string) TextNode {
	sub := n
	sub.ID = uuid.NewString()
	sub.Text = text
	sub.Metadata = n.Metadata.Clone()
	return sub
}

// EmbedText renders the text sent to the embedding model: the allow-listed
// metadata as "key: value" lines followed by the chunk content.
func (n TextNode) EmbedText() string {
	var b strings.Builder
	for _, key := range n.EmbedMetadataKeys {
		value, ok := n.Metadata[key]
		if !ok {
			continue
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(stringify(value))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(n.Text)
	return b.String()
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
