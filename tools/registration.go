package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/andyhawks/dkan2/docs"
	"github.com/andyhawks/dkan2/metastore"
	"github.com/andyhawks/dkan2/openapi"
)

// RegisterAll registers all tools with the MCP server.
func RegisterAll(s *server.MCPServer, docsSvc *docs.Service, client *metastore.Client, specSource openapi.Source) {
	registerDocTools(s, docsSvc, specSource)
	registerCatalogTools(s, client)
}
