package mcp

import (
	"context"
	"testing"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

func testService(t *testing.T) *Service {
	t.Helper()

	eng, err := engine.New(engine.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	sequences := corpus.Records{
		{SpeciesID: "sp_001", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_002", Sequence: "CGATCGATT"},
	}
	taxonomy := corpus.TaxonomyMap{
		"sp_001": {ScientificName: "Thunnus albacares", CommonName: "Yellowfin tuna", Phylum: "Chordata"},
		"sp_002": {ScientificName: "Octopus vulgaris", CommonName: "Common octopus", Phylum: "Mollusca"},
	}
	if err := eng.Rebuild(sequences, taxonomy); err != nil {
		t.Fatal(err)
	}
	return NewService(eng)
}

func TestIdentifySpeciesDefaultFloor(t *testing.T) {
	s := testService(t)

	// Disjoint from both profiles: nothing clears the default 50 floor.
	_, result, err := s.IdentifySpecies(context.Background(), nil, IdentifySpeciesArgs{
		Sequence: "AAAAAAAAAAA",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) != 0 {
		t.Errorf("matches = %v, want empty under the default floor", result.Matches)
	}
}

func TestIdentifySpeciesExplicitZeroFloor(t *testing.T) {
	s := testService(t)

	// An explicit min_score of 0 must reach the engine, not fall back to
	// the default: zero-score species are then listed too.
	zero := 0.0
	_, result, err := s.IdentifySpecies(context.Background(), nil, IdentifySpeciesArgs{
		Sequence:   "AAAAAAAAAAA",
		MinScore:   &zero,
		TopMatches: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("matches = %d, want both zero-score species with min_score 0", len(result.Matches))
	}
	for _, m := range result.Matches {
		if m.MatchingScore != 0.0 {
			t.Errorf("%s score = %v, want 0.0", m.SpeciesID, m.MatchingScore)
		}
	}
}

func TestBatchIdentifyExplicitZeroFloor(t *testing.T) {
	s := testService(t)

	zero := 0.0
	_, result, err := s.BatchIdentify(context.Background(), nil, BatchIdentifyArgs{
		Sequences: []BatchSequence{{ID: "q", Sequence: "AAAAAAAAAAA"}},
		MinScore:  &zero,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results["q"]) != 2 {
		t.Errorf("results[q] = %v, want both zero-score species with min_score 0", result.Results["q"])
	}

	// Unset min_score inherits the engine default and filters them out.
	_, result, err = s.BatchIdentify(context.Background(), nil, BatchIdentifyArgs{
		Sequences: []BatchSequence{{ID: "q", Sequence: "AAAAAAAAAAA"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results["q"]) != 0 {
		t.Errorf("results[q] = %v, want empty under the default floor", result.Results["q"])
	}
}

func TestIdentifySpeciesBestMatch(t *testing.T) {
	s := testService(t)

	_, result, err := s.IdentifySpecies(context.Background(), nil, IdentifySpeciesArgs{
		Sequence: "ATGCGATCG",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) == 0 {
		t.Fatal("expected a match for an exact reference sequence")
	}
	best := result.Matches[0]
	if best.SpeciesID != "sp_001" || best.MatchingScore != 100.0 || best.ConfidenceLevel != "high" {
		t.Errorf("best = %+v", best)
	}
}
