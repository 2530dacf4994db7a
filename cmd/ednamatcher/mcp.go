package main

import (
	"context"
	"log"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/RewanshChoudhary/OceanRepo/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the identification engine as MCP tools over stdio",
	Long: `Builds the reference index and exposes the identification operations
as Model Context Protocol tools on standard input/output, so LLM agents
can be pointed at the reference corpus directly.`,
	Args: cobra.NoArgs,
	Run:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	srv := mcp.NewMCPServer(eng, version)
	if err := srv.Run(context.Background(), &sdk.StdioTransport{}); err != nil {
		log.Fatalf("mcp server stopped: %v", err)
	}
}
