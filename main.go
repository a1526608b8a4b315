package main

import (
	"flag"
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/andyhawks/dkan2/config"
	"github.com/andyhawks/dkan2/docs"
	"github.com/andyhawks/dkan2/internal"
	"github.com/andyhawks/dkan2/metastore"
	"github.com/andyhawks/dkan2/openapi"
	"github.com/andyhawks/dkan2/server"
	"github.com/andyhawks/dkan2/tools"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ~/.config/dkan2/config.yaml)")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	internal.SetLogLevel(cfg.LogLevel)

	// Spec source: local file wins over URL
	var source openapi.Source
	if cfg.Spec.Path != "" {
		source = openapi.NewFileSource(cfg.Spec.Path)
		internal.Logf("spec source: file %s", cfg.Spec.Path)
	} else {
		source = openapi.NewHTTPSource(cfg.Spec.URL, cfg.Spec.CacheDir)
		internal.Logf("spec source: url %s", cfg.Spec.URL)
	}

	client := metastore.NewClient(cfg.Metastore)
	internal.Logf("metastore client configured: %s", client.BaseURL)

	var modifiers []docs.Modifier
	if len(cfg.ProtectedDatasets) > 0 {
		modifiers = append(modifiers, docs.NewProtectedDatasets(cfg.ProtectedDatasets))
		internal.Logf("protecting %d datasets", len(cfg.ProtectedDatasets))
	}

	docsSvc := docs.NewService(source, client, modifiers...)

	if *mcpMode {
		s := mcpserver.NewMCPServer(
			"dkan2",
			"1.0.0",
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithInstructions("dkan2 provides tools to browse an open-data catalog's API documentation. Use list_datasets to see the catalog, get_dataset_docs for per-dataset endpoint docs, and search_api to find endpoints."),
		)
		tools.RegisterAll(s, docsSvc, client, source)

		internal.Logf("starting dkan2 MCP server (stdio)")
		if err := mcpserver.ServeStdio(s); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	srv := server.New(docsSvc, internal.Logger())
	if err := srv.ListenAndServe(cfg.Listen); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
