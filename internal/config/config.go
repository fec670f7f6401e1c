package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load("manifests/config.env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyTokenizerModel, "gpt-4o-mini")
	viper.SetDefault(KeyChunkSize, 512)
	viper.SetDefault(KeyChunkOverlap, 64)
	viper.SetDefault(KeyEmbedBatchSize, 16)
	viper.SetDefault(KeySourcesFile, "manifests/sources.yaml")
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyNotionDBChunkSize, 256)
	viper.SetDefault(KeyHackernewsBaseURL, "https://hacker-news.firebaseio.com")
	viper.SetDefault(KeyPdfBasePath, "ignore/pdfs")
	viper.SetDefault(KeyPdfLayoutParser, false)
	viper.SetDefault(KeyExportLimit, 0)
}

func PostgresURL() string      { return viper.GetString(KeyPostgresURL) }
func OllamaURL() string        { return viper.GetString(KeyOllamaURL) }
func LogLevel() string         { return viper.GetString(KeyLogLevel) }
func EmbeddingModel() string   { return viper.GetString(KeyEmbeddingModel) }
func TokenizerModel() string   { return viper.GetString(KeyTokenizerModel) }
func ChunkSize() int           { return viper.GetInt(KeyChunkSize) }
func ChunkOverlap() int        { return viper.GetInt(KeyChunkOverlap) }
func EmbedBatchSize() int      { return viper.GetInt(KeyEmbedBatchSize) }
func SourcesFile() string      { return viper.GetString(KeySourcesFile) }
func AutoMigrate() bool        { return viper.GetBool(KeyAutoMigrate) }
func EmbedCallTimeout() string { return viper.GetString(KeyEmbedCallTimeout) }

func ConfluenceBaseURL() string    { return viper.GetString(KeyConfluenceBaseURL) }
func ConfluenceUser() string       { return viper.GetString(KeyConfluenceUser) }
func ConfluenceToken() string      { return viper.GetString(KeyConfluenceToken) }
func NotionToken() string          { return viper.GetString(KeyNotionToken) }
func NotionDBChunkSize() int       { return viper.GetInt(KeyNotionDBChunkSize) }
func HackernewsBaseURL() string    { return viper.GetString(KeyHackernewsBaseURL) }
func PdfBasePath() string          { return viper.GetString(KeyPdfBasePath) }
func PdfLayoutParserEnabled() bool { return viper.GetBool(KeyPdfLayoutParser) }
func ExportLimit() int             { return viper.GetInt(KeyExportLimit) }
