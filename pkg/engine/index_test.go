package engine

import (
	"errors"
	"testing"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
)

func TestBuildIndexAccumulatesAcrossRecords(t *testing.T) {
	sequences := corpus.Records{
		{SpeciesID: "sp_001", Sequence: "ATGCG"},
		{SpeciesID: "sp_001", Sequence: "ATGCG"},
		{SpeciesID: "sp_001", Sequence: "TTTTT"},
	}

	idx, err := BuildIndex(sequences, corpus.TaxonomyMap{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	profile := idx.Profile("sp_001")
	if profile["ATGCG"] != 2 {
		t.Errorf("ATGCG count = %d, want 2 (summed across records)", profile["ATGCG"])
	}
	if profile["TTTTT"] != 1 {
		t.Errorf("TTTTT count = %d, want 1", profile["TTTTT"])
	}
}

func TestBuildIndexKeepsDegenerateSpecies(t *testing.T) {
	sequences := corpus.Records{
		{SpeciesID: "sp_good", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_short", Sequence: "ATG"},
		{SpeciesID: "sp_invalid", Sequence: "NNNNNNNNNN"},
		{SpeciesID: "sp_empty", Sequence: ""},
	}

	idx, err := BuildIndex(sequences, corpus.TaxonomyMap{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	if idx.Len() != 4 {
		t.Fatalf("indexed species = %d, want 4 (degenerate species stay indexed)", idx.Len())
	}
	for _, id := range []string{"sp_short", "sp_invalid", "sp_empty"} {
		if !idx.HasSpecies(id) {
			t.Errorf("species %s missing from index", id)
		}
		if n := idx.Profile(id).Distinct(); n != 0 {
			t.Errorf("species %s profile has %d k-mers, want 0", id, n)
		}
	}

	// A degenerate species can never be a candidate match.
	matches, err := idx.Match("ATGCGATCG", 10, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if m.SpeciesID != "sp_good" && m.MatchingScore > 0 {
			t.Errorf("degenerate species %s scored %v, want 0", m.SpeciesID, m.MatchingScore)
		}
	}
}

func TestBuildIndexMetadataDefaults(t *testing.T) {
	sequences := corpus.Records{
		{SpeciesID: "sp_known", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_unknown", Sequence: "ATGCGATCG"},
	}
	taxonomy := corpus.TaxonomyMap{
		"sp_known": {ScientificName: "Thunnus albacares", CommonName: "Yellowfin tuna"},
	}

	idx, err := BuildIndex(sequences, taxonomy, 5)
	if err != nil {
		t.Fatal(err)
	}

	known := idx.Metadata("sp_known")
	if known.ScientificName != "Thunnus albacares" {
		t.Errorf("ScientificName = %q", known.ScientificName)
	}
	// Phylum absent from the taxonomy record still defaults.
	if known.Phylum != corpus.Unknown {
		t.Errorf("known species empty phylum = %q, want Unknown", known.Phylum)
	}

	unknown := idx.Metadata("sp_unknown")
	if unknown.ScientificName != corpus.Unknown || unknown.CommonName != corpus.Unknown || unknown.Phylum != corpus.Unknown {
		t.Errorf("unlisted species metadata = %+v, want all Unknown", unknown)
	}
}

func TestBuildIndexRejectsBadK(t *testing.T) {
	for _, k := range []int{0, -3} {
		_, err := BuildIndex(corpus.Records{}, corpus.TaxonomyMap{}, k)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("k=%d: err = %v, want ErrConfig", k, err)
		}
	}
}

func TestEmptyIndexMatchesNothing(t *testing.T) {
	idx, err := BuildIndex(corpus.Records{}, corpus.TaxonomyMap{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 0 {
		t.Fatalf("Len = %d, want 0", idx.Len())
	}

	matches, err := idx.Match("ATGCGATCG", 5, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("matches against empty index = %v, want empty", matches)
	}
}

func TestListSpeciesOrdered(t *testing.T) {
	sequences := corpus.Records{
		{SpeciesID: "sp_c", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_a", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_b", Sequence: "ATGCGATCG"},
	}

	idx, err := BuildIndex(sequences, corpus.TaxonomyMap{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	listed := idx.ListSpecies()
	if len(listed) != 3 {
		t.Fatalf("listed %d species, want 3", len(listed))
	}
	for i, want := range []string{"sp_a", "sp_b", "sp_c"} {
		if listed[i].SpeciesID != want {
			t.Errorf("listed[%d] = %s, want %s", i, listed[i].SpeciesID, want)
		}
	}
}
