package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/tabula"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

// ReaderConfig locates the PDF directory and selects the parsing mode.
type ReaderConfig struct {
	BasePath string
	// LayoutParser enables markdown-preserving layout extraction plus
	// business-field mining; off, files degrade to plain text and raw
	// file metadata.
	LayoutParser bool
	ExportLimit  int // 0 means all files
}

// Reader loads every .pdf under the base path. A file that fails to parse
// is logged and skipped; the run continues with the remaining files.
type Reader struct {
	cfg ReaderConfig
	log logging.Logger
}

func NewReader(cfg ReaderConfig, log logging.Logger) *Reader {
	return &Reader{cfg: cfg, log: log.WithName("pdf")}
}

func (r *Reader) GetAllDocuments(ctx context.Context) ([]document.Document, error) {
	entries, err := os.ReadDir(r.cfg.BasePath)
	if err != nil {
		return nil, err
	}

	var documents []document.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.cfg.ExportLimit > 0 && len(documents) >= r.cfg.ExportLimit {
			break
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(r.cfg.BasePath, entry.Name())
		doc, err := r.parse(path)
		if err != nil {
			r.log.Error(err, "failed to load PDF", "file", entry.Name())
			continue
		}
		documents = append(documents, doc)
	}

	r.log.Info("pdf files loaded", "count", len(documents))
	return documents, nil
}

func (r *Reader) parse(path string) (document.Document, error) {
	if r.cfg.LayoutParser {
		return r.parseLayout(path)
	}
	return r.parsePlain(path)
}

// parsePlain extracts raw text and file metadata.
func (r *Reader) parsePlain(path string) (document.Document, error) {
	text, warnings, err := tabula.Open(path).Text()
	if err != nil {
		return document.Document{}, err
	}
	r.logWarnings(path, warnings)

	metadata, err := r.fileMetadata(path)
	if err != nil {
		return document.Document{}, err
	}
	return NewDocument(text, metadata), nil
}

// parseLayout extracts markdown via layout analysis and enriches the
// metadata with the regex-mined business fields from the first two pages.
func (r *Reader) parseLayout(path string) (document.Document, error) {
	markdown, warnings, err := tabula.Open(path).ToMarkdown()
	if err != nil {
		return document.Document{}, err
	}
	r.logWarnings(path, warnings)

	metadata, err := r.fileMetadata(path)
	if err != nil {
		return document.Document{}, err
	}

	firstPages, _, err := tabula.Open(path).PageRange(1, 2).Text()
	if err != nil {
		return document.Document{}, err
	}
	for name, value := range extractFields(firstPages) {
		metadata[name] = value
	}

	return NewDocument(markdown, metadata), nil
}

func (r *Reader) fileMetadata(path string) (document.Metadata, error) {
	doc, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, err
	}
	r.logWarnings(path, warnings)

	metadata := document.Metadata{
		"datasource": "pdf",
		"url":        path,
		"title":      filepath.Base(path),
	}
	if doc.Metadata.Title != "" {
		metadata["title"] = doc.Metadata.Title
	}
	if !doc.Metadata.CreationDate.IsZero() {
		metadata["creation_date"] = doc.Metadata.CreationDate.Format(time.RFC3339)
	}
	if !doc.Metadata.ModDate.IsZero() {
		metadata["mod_date"] = doc.Metadata.ModDate.Format(time.RFC3339)
	}
	return metadata, nil
}

func (r *Reader) logWarnings(path string, warnings []tabula.Warning) {
	if len(warnings) > 0 {
		r.log.Debug("pdf extraction warnings", "file", filepath.Base(path), "warnings", tabula.FormatWarnings(warnings))
	}
}
