package types

type ChunkResult struct {
	ID         string         `json:"id"`
	Datasource string         `json:"datasource"`
	Title      string         `json:"title"`
	SourceURL  *string        `json:"source_url,omitempty"`
	Snippet    string         `json:"snippet"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Similarity float64        `json:"similarity"`
}

type DatasourceInfo struct {
	Name      string `json:"name"`
	Chunks    int    `json:"chunks"`
	UpdatedAt string `json:"updated_at"`
}
