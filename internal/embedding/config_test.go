package embedding

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if d, err := parseDuration("90s", time.Minute); err != nil || d != 90*time.Second {
		t.Errorf("parseDuration(90s) = %v, %v", d, err)
	}
	if d, err := parseDuration("", time.Minute); err != nil || d != time.Minute {
		t.Errorf("empty value should fall back, got %v, %v", d, err)
	}
	if _, err := parseDuration("soon", time.Minute); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	manifest := `confluence:
  enabled: true
  space_keys: ["ENG", "OPS"]
notion:
  enabled: false
hackernews:
  enabled: true
pdf:
  enabled: false
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if !sources.Confluence.Enabled {
		t.Error("confluence should be enabled")
	}
	if len(sources.Confluence.SpaceKeys) != 2 || sources.Confluence.SpaceKeys[0] != "ENG" {
		t.Errorf("unexpected space keys: %v", sources.Confluence.SpaceKeys)
	}
	if sources.Notion.Enabled {
		t.Error("notion should be disabled")
	}
	if !sources.Hackernews.Enabled {
		t.Error("hackernews should be enabled")
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}
