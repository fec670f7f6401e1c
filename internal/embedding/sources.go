package embedding

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Sources is the manifest selecting which datasources a run ingests.
type Sources struct {
	Confluence ConfluenceSource `json:"confluence"`
	Notion     NotionSource     `json:"notion"`
	Hackernews HackernewsSource `json:"hackernews"`
	Pdf        PdfSource        `json:"pdf"`
}

type ConfluenceSource struct {
	Enabled   bool     `json:"enabled"`
	SpaceKeys []string `json:"space_keys"`
}

type NotionSource struct {
	Enabled bool `json:"enabled"`
}

type HackernewsSource struct {
	Enabled bool `json:"enabled"`
}

type PdfSource struct {
	Enabled bool `json:"enabled"`
}

func LoadSources(path string) (Sources, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Sources{}, fmt.Errorf("read sources manifest: %w", err)
	}
	var sources Sources
	if err := yaml.Unmarshal(raw, &sources); err != nil {
		return Sources{}, fmt.Errorf("parse sources manifest %s: %w", path, err)
	}
	return sources, nil
}
