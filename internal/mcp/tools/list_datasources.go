package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ragline/ragline/internal/mcp/tools/types"
)

type DatasourceListService interface {
	ListDatasources(ctx context.Context) ([]types.DatasourceInfo, error)
}

type ListDatasourcesHandler struct{ Service DatasourceListService }

func (h *ListDatasourcesHandler) ToolAdapter(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := h.Service.ListDatasources(ctx)
	if err != nil {
		return nil, err
	}

	response := struct {
		Datasources []types.DatasourceInfo `json:"datasources"`
		Total       int                    `json:"total"`
	}{Datasources: infos, Total: len(infos)}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}
