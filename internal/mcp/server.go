// Package mcp exposes the chunk store over the Model Context Protocol:
// semantic search plus a datasource inventory, served over streamable HTTP.
package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ragline/ragline/internal/db"
	"github.com/ragline/ragline/internal/logging"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *db.Database
	Log     logging.Logger
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"ragline-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	toolDefinitions := map[string]mcp.Tool{
		"search_chunks": mcp.NewTool("search_chunks",
			mcp.WithDescription("Semantic search across all embedded content using embeddings. Returns relevant chunks with similarity scores, source metadata and links."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language search query (e.g., 'How is the deployment pipeline configured?')"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
			mcp.WithString("datasource",
				mcp.Description("Optional: restrict results to one datasource"),
				mcp.Enum("confluence", "notion", "hackernews", "pdf"),
			),
		),
		"list_datasources": mcp.NewTool("list_datasources",
			mcp.WithDescription("List the ingested datasources with their chunk counts and last update time."),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
		Log:     cfg.Log,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.Log.Error(err, "error closing database")
		}
	}
}
