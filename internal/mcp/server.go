package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

// NewMCPServer exposes the species identification engine as MCP tools,
// so LLM agents can query the reference index directly.
func NewMCPServer(eng *engine.Engine, version string) *mcp.Server {
	service := NewService(eng)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "OceanRepo Species Identification",
		Version: version,
	}, nil)

	// Register tools using the generic AddTool which inspects the
	// argument structs for their schema.

	mcp.AddTool(s, &mcp.Tool{
		Name:        "identify_species",
		Description: "Identify marine species from an eDNA sequence using k-mer matching against the reference index.",
	}, service.IdentifySpecies)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "batch_identify",
		Description: "Identify several named eDNA sequences at once, with optional ground truth for accuracy measurement.",
	}, service.BatchIdentify)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_species",
		Description: "List every species covered by the loaded reference index.",
	}, service.ListSpecies)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report the shape of the loaded reference index (species count, k-mer profiles, k).",
	}, service.IndexStats)

	return s
}
