package mcp

// --- Tool Arguments ---

type IdentifySpeciesArgs struct {
	Sequence string `json:"sequence" jsonschema:"The eDNA sequence to identify (bases A/T/G/C/N),required"`
	// MinScore is a pointer so an explicit 0 (include everything) stays
	// distinguishable from an absent field.
	MinScore   *float64 `json:"min_score,omitempty" jsonschema:"Minimum matching score threshold 0-100. Defaults to the engine setting."`
	TopMatches int      `json:"top_matches,omitempty" jsonschema:"Max number of candidate species to return (default 5)"`
}

type IdentifySpeciesResult struct {
	Matches []MatchSummary `json:"matches"`
	Message string         `json:"message"`
}

// MatchSummary is the per-candidate payload returned to the LLM.
type MatchSummary struct {
	SpeciesID       string  `json:"species_id"`
	ScientificName  string  `json:"scientific_name"`
	CommonName      string  `json:"common_name"`
	Phylum          string  `json:"phylum"`
	MatchingScore   float64 `json:"matching_score"`
	ConfidenceLevel string  `json:"confidence_level"`
}

type BatchIdentifyArgs struct {
	Sequences []BatchSequence `json:"sequences" jsonschema:"The named sequences to identify,required"`
	MinScore  *float64        `json:"min_score,omitempty" jsonschema:"Minimum matching score threshold 0-100. Defaults to the engine setting."`
}

type BatchSequence struct {
	ID            string `json:"id" jsonschema:"Identifier for this query,required"`
	Sequence      string `json:"sequence" jsonschema:"The eDNA sequence,required"`
	ExpectedMatch string `json:"expected_match,omitempty" jsonschema:"Optional ground-truth species_id for accuracy measurement"`
}

type BatchIdentifyResult struct {
	Results  map[string][]MatchSummary `json:"results"`
	Report   string                    `json:"report"`
	Accuracy float64                   `json:"accuracy"`
}

type ListSpeciesArgs struct {
	// No arguments; the tool lists the whole reference index.
}

type ListSpeciesResult struct {
	Species []string `json:"species"` // Formatted "species_id: scientific name (common name)" lines
}

type IndexStatsArgs struct{}

type IndexStatsResult struct {
	SpeciesCount  int    `json:"species_count"`
	ProfiledKmers int    `json:"profiled_kmers"`
	KmerSize      int    `json:"k_mer_size"`
	Description   string `json:"description"`
}
