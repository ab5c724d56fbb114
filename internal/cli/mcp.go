package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-prism/internal/cache"
	"github.com/mvp-joe/project-prism/internal/config"
	"github.com/mvp-joe/project-prism/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for structural code analysis",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants analyze source file structure on demand.

The MCP server:
- Exposes the analyze_code tool (parse, symbols, imports, exports,
  structure, diagnostics)
- Caches analysis results in SQLite, evicting entries when watched
  files change
- Communicates via stdio (standard MCP transport)

Example:
  prism mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration from .prism/config.yaml
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Current working directory is the analysis root.
	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Prism MCP Server\n")
	if cfg.Cache.Enabled {
		location := cfg.Cache.Location
		if location == "" {
			location = cache.DefaultLocation()
		}
		fmt.Fprintf(os.Stderr, "Cache Location: %s\n", location)
	}
	fmt.Fprintf(os.Stderr, "\n")

	server, err := mcp.NewServer(cfg, projectPath)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
