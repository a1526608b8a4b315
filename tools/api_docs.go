package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/andyhawks/dkan2/docs"
	"github.com/andyhawks/dkan2/openapi"
)

func registerDocTools(s *server.MCPServer, docsSvc *docs.Service, specSource openapi.Source) {
	// get_dataset_docs
	s.AddTool(
		mcp.NewTool("get_dataset_docs",
			mcp.WithDescription("Get the OpenAPI document customized for one dataset: only dataset-specific endpoints, with example values filled in and one SQL endpoint per distribution"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Dataset identifier (UUID)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier := mcp.ParseString(req, "identifier", "")
			return handleGetDatasetDocs(ctx, docsSvc, identifier)
		},
	)

	// list_endpoints
	s.AddTool(
		mcp.NewTool("list_endpoints",
			mcp.WithDescription("List the catalog API's endpoints, optionally filtered by tag or HTTP method"),
			mcp.WithString("tag", mcp.Description("Filter by API tag/category")),
			mcp.WithString("method", mcp.Description("Filter by HTTP method (GET, POST, PUT, DELETE)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tag := mcp.ParseString(req, "tag", "")
			method := strings.ToUpper(mcp.ParseString(req, "method", ""))
			return handleListEndpoints(ctx, specSource, tag, method)
		},
	)

	// search_api
	s.AddTool(
		mcp.NewTool("search_api",
			mcp.WithDescription("Full-text search across the catalog API spec. Searches endpoint paths, summaries, descriptions, and tags."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query := mcp.ParseString(req, "query", "")
			return handleSearchAPI(ctx, specSource, query)
		},
	)

	// get_endpoint_details
	s.AddTool(
		mcp.NewTool("get_endpoint_details",
			mcp.WithDescription("Get full details for a specific catalog API endpoint including parameters, request body schema, and responses"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Endpoint path (e.g. /api/1/datastore/sql)")),
			mcp.WithString("method", mcp.Description("HTTP method (defaults to GET)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			path := mcp.ParseString(req, "path", "")
			method := strings.ToUpper(mcp.ParseString(req, "method", "GET"))
			return handleGetEndpointDetails(ctx, specSource, path, method)
		},
	)
}

func handleGetDatasetDocs(ctx context.Context, docsSvc *docs.Service, identifier string) (*mcp.CallToolResult, error) {
	if identifier == "" {
		return mcp.NewToolResultError("identifier is required"), nil
	}

	doc, err := docsSvc.DatasetSpecific(ctx, identifier)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building docs for %s: %v", identifier, err)), nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling docs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleListEndpoints(ctx context.Context, specSource openapi.Source, tag, method string) (*mcp.CallToolResult, error) {
	idx, err := loadIndex(ctx, specSource)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	endpoints := idx.Filter(tag, method)
	if len(endpoints) == 0 {
		return mcp.NewToolResultText("No endpoints match the given filters."), nil
	}

	// Compact listing grouped by tag
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s endpoints (%d)\n\n", idx.Title, len(endpoints)))

	tagMap := make(map[string][]openapi.EndpointSummary)
	for _, ep := range endpoints {
		t := ep.Tag
		if t == "" {
			t = "untagged"
		}
		tagMap[t] = append(tagMap[t], ep)
	}

	for t, eps := range tagMap {
		sb.WriteString(fmt.Sprintf("## %s\n", t))
		for _, ep := range eps {
			sb.WriteString(fmt.Sprintf("- %s %s — %s\n", ep.Method, ep.Path, ep.Summary))
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleSearchAPI(ctx context.Context, specSource openapi.Source, query string) (*mcp.CallToolResult, error) {
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	idx, err := loadIndex(ctx, specSource)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := idx.Search(query)
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Search results for %q (%d matches)\n\n", query, len(results)))
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("- %s %s", r.Method, r.Path))
		if r.Summary != "" {
			sb.WriteString(fmt.Sprintf(" — %s", r.Summary))
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetEndpointDetails(ctx context.Context, specSource openapi.Source, path, method string) (*mcp.CallToolResult, error) {
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	idx, err := loadIndex(ctx, specSource)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := idx.GetDetail(path, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func loadIndex(ctx context.Context, specSource openapi.Source) (*openapi.Index, error) {
	doc, err := specSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog spec: %w", err)
	}
	return openapi.BuildIndex(doc), nil
}
