package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

type Service struct {
	engine *engine.Engine
}

func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// --- Tool Handlers ---

func (s *Service) IdentifySpecies(ctx context.Context, req *mcp.CallToolRequest, args IdentifySpeciesArgs) (*mcp.CallToolResult, IdentifySpeciesResult, error) {
	opts := s.engine.Options()
	minScore := opts.MinScore
	if args.MinScore != nil {
		minScore = *args.MinScore
	}
	topMatches := args.TopMatches
	if topMatches <= 0 {
		topMatches = opts.TopN
	}

	matches, err := s.engine.MatchWith(args.Sequence, topMatches, minScore)
	if err != nil {
		return nil, IdentifySpeciesResult{}, fmt.Errorf("identification error: %w", err)
	}

	result := IdentifySpeciesResult{Matches: summarize(matches)}
	if len(matches) == 0 {
		result.Message = fmt.Sprintf("No species matches found above %g%% similarity threshold", minScore)
	} else {
		best := matches[0]
		result.Message = fmt.Sprintf("Best match: %s (%s) at %.2f%% [%s]",
			best.CommonName, best.ScientificName, best.MatchingScore, best.ConfidenceLevel)
	}
	return nil, result, nil
}

func (s *Service) BatchIdentify(ctx context.Context, req *mcp.CallToolRequest, args BatchIdentifyArgs) (*mcp.CallToolResult, BatchIdentifyResult, error) {
	opts := s.engine.Options()
	minScore := opts.MinScore
	if args.MinScore != nil {
		minScore = *args.MinScore
	}

	queries := make([]engine.BatchQuery, 0, len(args.Sequences))
	for _, seq := range args.Sequences {
		queries = append(queries, engine.BatchQuery{
			ID:            seq.ID,
			Sequence:      seq.Sequence,
			ExpectedMatch: seq.ExpectedMatch,
		})
	}

	batch, err := s.engine.RunBatch(queries, opts.TopN, minScore, 1)
	if err != nil {
		return nil, BatchIdentifyResult{}, fmt.Errorf("batch error: %w", err)
	}

	result := BatchIdentifyResult{
		Results:  make(map[string][]MatchSummary, len(batch.Results)),
		Accuracy: batch.Report.Accuracy,
	}
	for id, item := range batch.Results {
		result.Results[id] = summarize(item.Matches)
	}
	if batch.Report.WithExpectation > 0 {
		result.Report = fmt.Sprintf("%d/%d predictions correct (%.1f%% accuracy)",
			batch.Report.Correct, batch.Report.WithExpectation, batch.Report.Accuracy)
	} else {
		result.Report = fmt.Sprintf("%d sequences processed, no ground truth provided", batch.Report.TotalQueries)
	}
	return nil, result, nil
}

func (s *Service) ListSpecies(ctx context.Context, req *mcp.CallToolRequest, args ListSpeciesArgs) (*mcp.CallToolResult, ListSpeciesResult, error) {
	idx := s.engine.Index()
	if idx == nil {
		return nil, ListSpeciesResult{Species: []string{}}, nil
	}

	lines := make([]string, 0, idx.Len())
	for _, meta := range idx.ListSpecies() {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s (%s)", meta.SpeciesID, meta.ScientificName, meta.CommonName)
		if meta.Phylum != "Unknown" {
			fmt.Fprintf(&b, " - phylum %s", meta.Phylum)
		}
		lines = append(lines, b.String())
	}
	return nil, ListSpeciesResult{Species: lines}, nil
}

func (s *Service) IndexStats(ctx context.Context, req *mcp.CallToolRequest, args IndexStatsArgs) (*mcp.CallToolResult, IndexStatsResult, error) {
	stats := s.engine.Stats()
	result := IndexStatsResult{
		SpeciesCount:  stats.SpeciesCount,
		ProfiledKmers: stats.ProfiledKmers,
		KmerSize:      stats.KmerSize,
	}
	if !stats.IndexAvailable {
		result.Description = "No reference index loaded"
	} else {
		result.Description = fmt.Sprintf("Reference index covering %d species with %d distinct %d-mer profiles",
			stats.SpeciesCount, stats.ProfiledKmers, stats.KmerSize)
	}
	return nil, result, nil
}

func summarize(matches []engine.ScoredMatch) []MatchSummary {
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchSummary{
			SpeciesID:       m.SpeciesID,
			ScientificName:  m.ScientificName,
			CommonName:      m.CommonName,
			Phylum:          m.Phylum,
			MatchingScore:   m.MatchingScore,
			ConfidenceLevel: string(m.ConfidenceLevel),
		})
	}
	return out
}
