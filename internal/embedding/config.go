package embedding

import (
	"fmt"
	"strings"
	"time"

	"github.com/ragline/ragline/internal/config"
)

type Config struct {
	PostgresURL    string
	OllamaURL      string
	EmbeddingModel string
	TokenizerModel string

	ChunkSize         int
	ChunkOverlap      int
	NotionDBChunkSize int // databases render as wide tables, usually a larger budget

	BatchSize        int
	SourcesFile      string
	AutoMigrate      bool
	EmbedCallTimeout time.Duration
	ExportLimit      int

	ConfluenceBaseURL string
	ConfluenceUser    string
	ConfluenceToken   string
	NotionToken       string
	HackernewsBaseURL string
	PdfBasePath       string
	PdfLayoutParser   bool
}

func LoadConfig() (Config, error) {
	cfg := Config{
		PostgresURL:       config.PostgresURL(),
		OllamaURL:         config.OllamaURL(),
		EmbeddingModel:    config.EmbeddingModel(),
		TokenizerModel:    config.TokenizerModel(),
		ChunkSize:         config.ChunkSize(),
		ChunkOverlap:      config.ChunkOverlap(),
		NotionDBChunkSize: config.NotionDBChunkSize(),
		BatchSize:         config.EmbedBatchSize(),
		SourcesFile:       config.SourcesFile(),
		AutoMigrate:       config.AutoMigrate(),
		ExportLimit:       config.ExportLimit(),
		ConfluenceBaseURL: config.ConfluenceBaseURL(),
		ConfluenceUser:    config.ConfluenceUser(),
		ConfluenceToken:   config.ConfluenceToken(),
		NotionToken:       config.NotionToken(),
		HackernewsBaseURL: config.HackernewsBaseURL(),
		PdfBasePath:       config.PdfBasePath(),
		PdfLayoutParser:   config.PdfLayoutParserEnabled(),
	}

	if cfg.NotionDBChunkSize <= 0 {
		cfg.NotionDBChunkSize = cfg.ChunkSize
	}

	timeout, err := parseDuration(config.EmbedCallTimeout(), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid embed_call_timeout: %w", err)
	}
	cfg.EmbedCallTimeout = timeout

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}
