package server

import (
	"time"

	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

// IdentifyRequest defines the body for single-sequence identification.
// MinScore and TopMatches are optional; unset values inherit the engine
// defaults. TopMatches is capped at the configured max_top_n.
type IdentifyRequest struct {
	Sequence   string   `json:"sequence"`
	MinScore   *float64 `json:"min_score,omitempty"`
	TopMatches int      `json:"top_matches,omitempty"`
}

// TaxonomyBlock is the full lineage attached to each identified match.
// Fields missing from the metadata corpus read "Unknown".
type TaxonomyBlock struct {
	Kingdom string `json:"kingdom"`
	Phylum  string `json:"phylum"`
	Class   string `json:"class"`
	Order   string `json:"order"`
	Family  string `json:"family"`
	Genus   string `json:"genus"`
}

// IdentifiedMatch is one ranked candidate enriched with its lineage.
type IdentifiedMatch struct {
	SpeciesID       string                 `json:"species_id"`
	ScientificName  string                 `json:"scientific_name"`
	CommonName      string                 `json:"common_name"`
	MatchingScore   float64                `json:"matching_score"`
	ConfidenceLevel engine.ConfidenceLevel `json:"confidence_level"`
	Taxonomy        TaxonomyBlock          `json:"taxonomy"`
	SequenceStats   SequenceStats          `json:"sequence_stats"`
}

// SequenceStats carries the per-query figures of a match.
type SequenceStats struct {
	QueryLength int `json:"query_length"`
	QueryKmers  int `json:"query_kmers"`
}

// QueryInfo summarizes how a query was processed.
type QueryInfo struct {
	SequenceLength    int     `json:"sequence_length"`
	ProcessedSequence string  `json:"processed_sequence"`
	KmerSize          int     `json:"k_mer_size"`
	MinScoreThreshold float64 `json:"min_score_threshold"`
	TotalMatchesFound int     `json:"total_matches_found"`
}

// IdentifyResponse is the body returned by POST /api/species/identify.
type IdentifyResponse struct {
	Matches           []IdentifiedMatch `json:"matches"`
	QueryInfo         QueryInfo         `json:"query_info"`
	AnalysisTimestamp time.Time         `json:"analysis_timestamp"`
	Message           string            `json:"message,omitempty"`
}

// BatchIdentifyRequest defines the body for batch identification.
type BatchIdentifyRequest struct {
	Queries    []engine.BatchQuery `json:"queries"`
	MinScore   *float64            `json:"min_score,omitempty"`
	TopMatches int                 `json:"top_matches,omitempty"`
}

// BatchIdentifyResponse wraps the engine's batch result.
type BatchIdentifyResponse struct {
	Results           map[string]engine.BatchItemResult `json:"results"`
	Report            engine.BatchReport                `json:"report"`
	AnalysisTimestamp time.Time                         `json:"analysis_timestamp"`
}

// RebuildResponse acknowledges an asynchronous index rebuild.
type RebuildResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
