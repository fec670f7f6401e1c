package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

const (
	apiBaseURL = "https://api.notion.com/v1"
	apiVersion = "2022-06-28"
	searchPage = 100
)

// ReaderConfig carries the integration-token settings for one workspace.
type ReaderConfig struct {
	Token       string
	ExportLimit int // 0 means no limit
}

// Reader walks the workspace through the search API and exports each page
// and database to markdown.
type Reader struct {
	cfg    ReaderConfig
	client *resty.Client
	log    logging.Logger
}

func NewReader(cfg ReaderConfig, log logging.Logger) *Reader {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	client := resty.NewWithClient(httpClient).
		SetBaseURL(apiBaseURL).
		SetHeader("Notion-Version", apiVersion).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)

	return &Reader{cfg: cfg, client: client, log: log.WithName("notion")}
}

// GetAllDocuments lists every page and database visible to the integration
// and materializes each as a markdown document tagged with its object type.
func (r *Reader) GetAllDocuments(ctx context.Context) ([]Document, error) {
	results, err := r.search(ctx)
	if err != nil {
		return nil, err
	}

	var documents []Document
	for _, result := range results {
		if r.cfg.ExportLimit > 0 && len(documents) >= r.cfg.ExportLimit {
			break
		}

		objectType, err := ParseObjectType(result.Get("object").String())
		if err != nil {
			return nil, err
		}

		doc, err := r.export(ctx, objectType, result)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	r.log.Info("workspace exported", "documents", len(documents))
	return documents, nil
}

// search pages through POST /search until exhaustion.
func (r *Reader) search(ctx context.Context) ([]gjson.Result, error) {
	var results []gjson.Result
	cursor := ""

	for {
		payload := map[string]any{"page_size": searchPage}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		resp, err := r.client.R().
			SetContext(ctx).
			SetBody(payload).
			Post("/search")
		if err != nil {
			return nil, fmt.Errorf("notion search: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("notion search returned %s", resp.Status())
		}

		body := resp.Body()
		results = append(results, gjson.GetBytes(body, "results").Array()...)

		if !gjson.GetBytes(body, "has_more").Bool() {
			return results, nil
		}
		cursor = gjson.GetBytes(body, "next_cursor").String()
	}
}

func (r *Reader) export(ctx context.Context, objectType ObjectType, result gjson.Result) (Document, error) {
	id := result.Get("id").String()
	metadata := document.Metadata{
		"id":               id,
		"title":            objectTitle(objectType, result),
		"url":              result.Get("url").String(),
		"created_time":     result.Get("created_time").String(),
		"last_edited_time": result.Get("last_edited_time").String(),
	}

	var text string
	var err error
	switch objectType {
	case ObjectDatabase:
		text, err = r.exportDatabase(ctx, id)
	case ObjectPage:
		text, err = r.exportPage(ctx, id)
	}
	if err != nil {
		return Document{}, fmt.Errorf("export %s %s: %w", objectType, id, err)
	}

	return FromExport(objectType, metadata, text), nil
}

// exportPage renders the page's block tree to markdown.
func (r *Reader) exportPage(ctx context.Context, pageID string) (string, error) {
	blocks, err := r.blockChildren(ctx, pageID)
	if err != nil {
		return "", err
	}
	return renderBlocks(blocks), nil
}

// exportDatabase queries all rows and renders them as one markdown table.
func (r *Reader) exportDatabase(ctx context.Context, databaseID string) (string, error) {
	var rows []gjson.Result
	cursor := ""

	for {
		payload := map[string]any{"page_size": searchPage}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		resp, err := r.client.R().
			SetContext(ctx).
			SetBody(payload).
			Post("/databases/" + databaseID + "/query")
		if err != nil {
			return "", fmt.Errorf("query database: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("database query returned %s", resp.Status())
		}

		body := resp.Body()
		rows = append(rows, gjson.GetBytes(body, "results").Array()...)

		if !gjson.GetBytes(body, "has_more").Bool() {
			break
		}
		cursor = gjson.GetBytes(body, "next_cursor").String()
	}

	return renderDatabaseRows(rows), nil
}

func (r *Reader) blockChildren(ctx context.Context, blockID string) ([]gjson.Result, error) {
	var blocks []gjson.Result
	cursor := ""

	for {
		req := r.client.R().SetContext(ctx).SetQueryParam("page_size", "100")
		if cursor != "" {
			req.SetQueryParam("start_cursor", cursor)
		}

		resp, err := req.Get("/blocks/" + blockID + "/children")
		if err != nil {
			return nil, fmt.Errorf("fetch blocks: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("block fetch returned %s", resp.Status())
		}

		body := resp.Body()
		for _, block := range gjson.GetBytes(body, "results").Array() {
			blocks = append(blocks, block)
			if block.Get("has_children").Bool() && block.Get("type").String() != "child_page" {
				children, err := r.blockChildren(ctx, block.Get("id").String())
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, children...)
			}
		}

		if !gjson.GetBytes(body, "has_more").Bool() {
			return blocks, nil
		}
		cursor = gjson.GetBytes(body, "next_cursor").String()
	}
}

func objectTitle(objectType ObjectType, result gjson.Result) string {
	if objectType == ObjectDatabase {
		return richText(result.Get("title"))
	}
	title := ""
	result.Get("properties").ForEach(func(_, value gjson.Result) bool {
		if value.Get("type").String() == "title" {
			title = richText(value.Get("title"))
			return false
		}
		return true
	})
	return title
}
