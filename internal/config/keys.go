package config

const (
	KeyPostgresURL      = "postgres_url"
	KeyOllamaURL        = "ollama_url"
	KeyLogLevel         = "log_level"
	KeyEmbeddingModel   = "embedding_model_name"
	KeyTokenizerModel   = "tokenizer_model_name"
	KeyChunkSize        = "chunk_size_in_tokens"
	KeyChunkOverlap     = "chunk_overlap_in_tokens"
	KeyEmbedBatchSize   = "embed_batch_size"
	KeySourcesFile      = "sources_file"
	KeyAutoMigrate      = "auto_migrate"
	KeyEmbedCallTimeout = "embed_call_timeout"

	KeyConfluenceBaseURL  = "confluence_base_url"
	KeyConfluenceUser     = "confluence_user"
	KeyConfluenceToken    = "confluence_token"
	KeyNotionToken        = "notion_token"
	KeyNotionDBChunkSize  = "notion_database_chunk_size_in_tokens"
	KeyHackernewsBaseURL  = "hackernews_base_url"
	KeyPdfBasePath        = "pdf_base_path"
	KeyPdfLayoutParser    = "pdf_layout_parser_enabled"
	KeyExportLimit        = "export_limit"
)
