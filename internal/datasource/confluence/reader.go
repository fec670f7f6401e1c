package confluence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

const pageBatchSize = 50

// ReaderConfig carries the connection settings for one Confluence instance.
type ReaderConfig struct {
	BaseURL     string
	User        string
	APIToken    string
	SpaceKeys   []string // empty means all spaces visible to the account
	ExportLimit int      // 0 means no limit
}

// Reader pages through the Confluence content API and materializes
// documents. Pagination state lives per call; the reader is safe for
// sequential reuse.
type Reader struct {
	cfg    ReaderConfig
	client *resty.Client
	log    logging.Logger
}

func NewReader(cfg ReaderConfig, log logging.Logger) *Reader {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.User, cfg.APIToken).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)
	return &Reader{cfg: cfg, client: client, log: log.WithName("confluence")}
}

// GetAllDocuments fetches every page (optionally restricted to configured
// spaces) and converts each to a Document.
func (r *Reader) GetAllDocuments(ctx context.Context) ([]document.Document, error) {
	spaces := r.cfg.SpaceKeys
	if len(spaces) == 0 {
		spaces = []string{""}
	}

	var documents []document.Document
	for _, space := range spaces {
		docs, err := r.fetchSpace(ctx, space, r.remaining(len(documents)))
		if err != nil {
			return nil, err
		}
		documents = append(documents, docs...)
		if r.limitReached(len(documents)) {
			break
		}
	}
	return documents, nil
}

func (r *Reader) fetchSpace(ctx context.Context, spaceKey string, limit int) ([]document.Document, error) {
	var documents []document.Document
	start := 0

	for {
		batch := pageBatchSize
		if limit > 0 && limit-len(documents) < batch {
			batch = limit - len(documents)
		}
		if batch <= 0 {
			break
		}

		params := map[string]string{
			"type":   "page",
			"expand": "body.view,history,history.lastUpdated,space",
			"start":  fmt.Sprintf("%d", start),
			"limit":  fmt.Sprintf("%d", batch),
		}
		if spaceKey != "" {
			params["spaceKey"] = spaceKey
		}

		resp, err := r.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get("/rest/api/content")
		if err != nil {
			return nil, fmt.Errorf("fetch confluence content (start=%d): %w", start, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("confluence API returned %s for start=%d", resp.Status(), start)
		}

		body := resp.Body()
		results := gjson.GetBytes(body, "results")
		if !results.Exists() || len(results.Array()) == 0 {
			break
		}

		for _, raw := range results.Array() {
			doc, err := FromPage(parsePage(raw), r.cfg.BaseURL)
			if err != nil {
				return nil, err
			}
			documents = append(documents, doc)
		}

		fetched := len(results.Array())
		r.log.Debug("page batch fetched", "space", spaceKey, "start", start, "count", fetched)

		size := gjson.GetBytes(body, "size").Int()
		if int(size) < batch || fetched < batch {
			break
		}
		start += fetched
	}

	return documents, nil
}

func parsePage(raw gjson.Result) Page {
	return Page{
		ID:       raw.Get("id").String(),
		Title:    raw.Get("title").String(),
		BodyHTML: raw.Get("body.view.value").String(),
		SpaceKey: raw.Get("space.key").String(),
		WebUI:    raw.Get("_links.webui").String(),
		Created:  raw.Get("history.createdDate").String(),
		Updated:  raw.Get("history.lastUpdated.when").String(),
	}
}

func (r *Reader) remaining(have int) int {
	if r.cfg.ExportLimit <= 0 {
		return 0
	}
	left := r.cfg.ExportLimit - have
	if left < 0 {
		return 0
	}
	return left
}

func (r *Reader) limitReached(have int) bool {
	return r.cfg.ExportLimit > 0 && have >= r.cfg.ExportLimit
}
