package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/andyhawks/dkan2/metastore"
)

func registerCatalogTools(s *server.MCPServer, client *metastore.Client) {
	// list_datasets
	s.AddTool(
		mcp.NewTool("list_datasets",
			mcp.WithDescription("List the catalog's datasets with their identifiers and titles"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDatasets(ctx, client)
		},
	)
}

func handleListDatasets(ctx context.Context, client *metastore.Client) (*mcp.CallToolResult, error) {
	datasets, err := client.ListDatasets(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing datasets: %v", err)), nil
	}
	if len(datasets) == 0 {
		return mcp.NewToolResultText("The catalog has no datasets."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Datasets (%d)\n\n", len(datasets)))
	for _, ds := range datasets {
		sb.WriteString(fmt.Sprintf("- %s — %s (%d distributions)\n", ds.Identifier, ds.Title, len(ds.Distribution)))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
