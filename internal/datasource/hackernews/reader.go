package hackernews

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/ragline/ragline/internal/document"
	"github.com/ragline/ragline/internal/logging"
)

// ReaderConfig points at a Hacker News API instance.
type ReaderConfig struct {
	BaseURL     string
	ExportLimit int // 0 means all top stories
}

// Reader fetches the current top stories.
type Reader struct {
	cfg    ReaderConfig
	client *resty.Client
	log    logging.Logger
}

func NewReader(cfg ReaderConfig, log logging.Logger) *Reader {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(time.Second)
	return &Reader{cfg: cfg, client: client, log: log.WithName("hackernews")}
}

// GetAllDocuments lists the top story ids and fetches each story. Items
// that are not stories (jobs, polls) or have no title are skipped.
func (r *Reader) GetAllDocuments(ctx context.Context) ([]document.Document, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		Get("/v0/topstories.json")
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("top stories returned %s", resp.Status())
	}

	ids := gjson.ParseBytes(resp.Body()).Array()
	if r.cfg.ExportLimit > 0 && len(ids) > r.cfg.ExportLimit {
		ids = ids[:r.cfg.ExportLimit]
	}

	documents := make([]document.Document, 0, len(ids))
	for _, id := range ids {
		story, err := r.fetchStory(ctx, id.Int())
		if err != nil {
			return nil, err
		}
		if story.Type != "story" || story.Title == "" {
			continue
		}
		documents = append(documents, FromStory(story))
	}

	r.log.Info("stories fetched", "count", len(documents))
	return documents, nil
}

func (r *Reader) fetchStory(ctx context.Context, id int64) (Story, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/v0/item/%d.json", id))
	if err != nil {
		return Story{}, fmt.Errorf("fetch story %d: %w", id, err)
	}
	if resp.IsError() {
		return Story{}, fmt.Errorf("story %d returned %s", id, resp.Status())
	}

	body := resp.Body()
	return Story{
		ID:    gjson.GetBytes(body, "id").Int(),
		Type:  gjson.GetBytes(body, "type").String(),
		Title: gjson.GetBytes(body, "title").String(),
		URL:   gjson.GetBytes(body, "url").String(),
	}, nil
}
