package embeddings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/ragline/ragline/internal/logging"
)

type Client struct {
	model string
	llm   *ollama.LLM
	to    time.Duration
	log   logging.Logger
}

func NewClient(baseURL, model string, timeout time.Duration, log logging.Logger) (*Client, error) {
	opts := []ollama.Option{ollama.WithModel(model)}
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		opts = append(opts, ollama.WithServerURL(trimmed))
	}
	opts = append(opts, ollama.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}))

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &Client{
		model: model,
		llm:   llm,
		to:    timeout,
		log:   log.WithName("ollama"),
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs provided for embedding")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	start := time.Now()
	c.log.Debug("embedding inputs", "count", len(inputs), "model", c.model)

	vectors, err := c.llm.CreateEmbedding(ctx, inputs)
	if err != nil {
		annotated := c.annotateError(err)
		c.log.Error(annotated, "embedding failed", "elapsed", time.Since(start).String())
		return nil, fmt.Errorf("create embedding: %w", annotated)
	}

	c.log.Debug("embedded inputs", "count", len(vectors), "elapsed", time.Since(start).String())
	return vectors, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("embedding call timed out after %s: %w", c.to, err)
	}
	return err
}
