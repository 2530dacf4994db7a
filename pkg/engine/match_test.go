package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
)

// testIndex builds an index over the two-species sample corpus used
// throughout the matcher tests.
func testIndex(t *testing.T) *ReferenceIndex {
	t.Helper()

	sequences := corpus.Records{
		{SpeciesID: "sp_001", Sequence: "ATGCGATCG"},
		{SpeciesID: "sp_002", Sequence: "CGATCGATT"},
	}
	taxonomy := corpus.TaxonomyMap{
		"sp_001": {ScientificName: "Thunnus albacares", CommonName: "Yellowfin tuna", Phylum: "Chordata"},
		"sp_002": {ScientificName: "Octopus vulgaris", CommonName: "Common octopus", Phylum: "Mollusca"},
	}

	idx, err := BuildIndex(sequences, taxonomy, 5)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestMatchSelfSimilarity(t *testing.T) {
	idx := testIndex(t)

	matches, err := idx.Match("ATGCGATCG", 5, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match for a reference sequence")
	}

	best := matches[0]
	if best.SpeciesID != "sp_001" {
		t.Errorf("best match = %s, want sp_001", best.SpeciesID)
	}
	if best.MatchingScore != 100.0 {
		t.Errorf("self-match score = %v, want exactly 100.0", best.MatchingScore)
	}
	if best.ConfidenceLevel != ConfidenceHigh {
		t.Errorf("self-match confidence = %s, want high", best.ConfidenceLevel)
	}
	if best.ScientificName != "Thunnus albacares" || best.CommonName != "Yellowfin tuna" {
		t.Errorf("metadata not carried into match: %+v", best)
	}
}

func TestMatchNoOverlapReturnsEmpty(t *testing.T) {
	idx := testIndex(t)

	// Valid bases, but no 5-mer in common with either profile.
	matches, err := idx.Match("AAAAAAAAAAA", 5, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches above threshold, got %v", matches)
	}
}

func TestMatchDegenerateQueries(t *testing.T) {
	idx := testIndex(t)

	for _, sequence := range []string{"", "ATG", "NNNNNNNNNN", "XXXXXYYYYY"} {
		matches, err := idx.Match(sequence, 5, 50.0)
		if err != nil {
			t.Fatalf("Match(%q) returned error: %v", sequence, err)
		}
		if len(matches) != 0 {
			t.Errorf("Match(%q) = %v, want empty", sequence, matches)
		}
	}
}

func TestMatchCaseAndWhitespaceInsensitive(t *testing.T) {
	idx := testIndex(t)

	a, err := idx.Match("ATGCGATCG", 5, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := idx.Match("  atgcgatcg  ", 5, 50.0)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("result lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].SpeciesID != b[i].SpeciesID || a[i].MatchingScore != b[i].MatchingScore {
			t.Errorf("result %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMatchScoreFloorAndOrdering(t *testing.T) {
	idx := testIndex(t)

	matches, err := idx.Match("ATGCGATCGATT", 5, 10.0)
	if err != nil {
		t.Fatal(err)
	}

	for i, m := range matches {
		if m.MatchingScore < 10.0 {
			t.Errorf("match %d score %v below floor", i, m.MatchingScore)
		}
		if i > 0 && matches[i-1].MatchingScore < m.MatchingScore {
			t.Errorf("matches not sorted descending at %d: %v < %v", i, matches[i-1].MatchingScore, m.MatchingScore)
		}
	}
}

func TestMatchTopNBound(t *testing.T) {
	idx := testIndex(t)

	matches, err := idx.Match("ATGCGATCGATT", 1, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 1 {
		t.Errorf("len = %d, want <= 1", len(matches))
	}
}

func TestMatchDeterminism(t *testing.T) {
	idx := testIndex(t)

	first, err := idx.Match("ATGCGATCGATT", 5, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := idx.Match("ATGCGATCGATT", 5, 0.0)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestMatchQueryStats(t *testing.T) {
	idx := testIndex(t)

	raw := "  atgcgatcg  "
	matches, err := idx.Match(raw, 5, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}

	// Length of the string as supplied by the caller, not the trimmed one.
	if matches[0].QueryLength != len(raw) {
		t.Errorf("QueryLength = %d, want %d", matches[0].QueryLength, len(raw))
	}
	// ATGCGATCG has 5 distinct 5-mers.
	if matches[0].QueryKmerCount != 5 {
		t.Errorf("QueryKmerCount = %d, want 5", matches[0].QueryKmerCount)
	}
}

func TestMatchConfigErrors(t *testing.T) {
	idx := testIndex(t)

	if _, err := idx.Match("ATGCGATCG", 0, 50.0); !errors.Is(err, ErrConfig) {
		t.Errorf("top_n=0: err = %v, want ErrConfig", err)
	}
	if _, err := idx.Match("ATGCGATCG", -1, 50.0); !errors.Is(err, ErrConfig) {
		t.Errorf("top_n=-1: err = %v, want ErrConfig", err)
	}
	if _, err := idx.Match("ATGCGATCG", 5, -0.5); !errors.Is(err, ErrConfig) {
		t.Errorf("min_score=-0.5: err = %v, want ErrConfig", err)
	}
	if _, err := idx.Match("ATGCGATCG", 5, 100.5); !errors.Is(err, ErrConfig) {
		t.Errorf("min_score=100.5: err = %v, want ErrConfig", err)
	}
}

func TestMatchScoreComponents(t *testing.T) {
	testCases := []struct {
		name      string
		query     map[string]int
		reference map[string]int
		expected  float64
	}{
		{
			name:      "identical profiles score 100",
			query:     map[string]int{"ATGCG": 2, "TGCGA": 1},
			reference: map[string]int{"ATGCG": 2, "TGCGA": 1},
			expected:  100.0,
		},
		{
			name:      "empty query scores 0",
			query:     map[string]int{},
			reference: map[string]int{"ATGCG": 1},
			expected:  0.0,
		},
		{
			name:      "empty reference scores 0",
			query:     map[string]int{"ATGCG": 1},
			reference: map[string]int{},
			expected:  0.0,
		},
		{
			name:      "disjoint profiles fall back to jaccard alone",
			query:     map[string]int{"AAAAA": 1},
			reference: map[string]int{"CCCCC": 1},
			expected:  0.0,
		},
		{
			// jaccard = 1/3 * 100, freq = 1.0 * 100
			// score = 0.7 * 33.33... + 0.3 * 100 = 53.33...
			name:      "partial overlap blends jaccard and frequency",
			query:     map[string]int{"ATGCG": 1, "TGCGA": 1},
			reference: map[string]int{"ATGCG": 1, "GGGGG": 1},
			expected:  0.7*(100.0/3.0) + 0.3*100.0,
		},
		{
			// Same keys, differing counts: jaccard = 100, freq = 50.
			name:      "frequency term penalizes count mismatch",
			query:     map[string]int{"ATGCG": 1},
			reference: map[string]int{"ATGCG": 2},
			expected:  0.7*100.0 + 0.3*50.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := matchScore(tc.query, tc.reference)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("matchScore = %v, want %v", got, tc.expected)
			}
		})
	}
}
