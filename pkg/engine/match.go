package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/RewanshChoudhary/OceanRepo/pkg/kmer"
)

// ScoredMatch is one ranked species candidate for a query sequence.
type ScoredMatch struct {
	SpeciesID       string          `json:"species_id"`
	ScientificName  string          `json:"scientific_name"`
	CommonName      string          `json:"common_name"`
	Phylum          string          `json:"phylum"`
	MatchingScore   float64         `json:"matching_score"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	QueryLength     int             `json:"query_length"`
	QueryKmerCount  int             `json:"query_kmers"`
}

// Match scores a query sequence against every indexed species and
// returns at most topN candidates whose score clears minScore, sorted by
// descending score. Equal scores keep the index's species discovery
// order (stable sort, no secondary key).
//
// A query that yields no valid k-mer, or an empty index, produces an
// empty list; neither is an error. The only error cases are topN <= 0
// and minScore outside [0, 100].
func (idx *ReferenceIndex) Match(querySequence string, topN int, minScore float64) ([]ScoredMatch, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrConfig, topN)
	}
	if minScore < 0 || minScore > 100 {
		return nil, fmt.Errorf("%w: min_score must be in [0, 100], got %g", ErrConfig, minScore)
	}

	queryProfile := kmer.Extract(querySequence, idx.k)
	if len(queryProfile) == 0 {
		return []ScoredMatch{}, nil
	}

	matches := make([]ScoredMatch, 0)
	for _, speciesID := range idx.order {
		score := matchScore(queryProfile, idx.profiles[speciesID])
		if score < minScore {
			continue
		}

		meta := idx.Metadata(speciesID)
		matches = append(matches, ScoredMatch{
			SpeciesID:       speciesID,
			ScientificName:  meta.ScientificName,
			CommonName:      meta.CommonName,
			Phylum:          meta.Phylum,
			MatchingScore:   round2(score),
			ConfidenceLevel: Classify(score),
			QueryLength:     len(querySequence),
			QueryKmerCount:  queryProfile.Distinct(),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchingScore > matches[j].MatchingScore
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

// matchScore combines Jaccard similarity over the k-mer key sets with a
// frequency similarity term over the shared k-mers:
//
//	score = 0.7·jaccard + 0.3·freq       when shared k-mers exist
//	score = jaccard                      otherwise
//
// both components on a 0–100 scale. Either profile being empty scores 0.
func matchScore(query, reference kmer.Profile) float64 {
	if len(query) == 0 || len(reference) == 0 {
		return 0.0
	}

	intersection := 0
	freqSum := 0.0
	for k, qCount := range query {
		rCount, ok := reference[k]
		if !ok {
			continue
		}
		intersection++
		freqSum += float64(min(qCount, rCount)) / float64(max(qCount, rCount))
	}

	union := len(query) + len(reference) - intersection
	if union == 0 {
		return 0.0
	}
	jaccard := float64(intersection) / float64(union) * 100

	if intersection == 0 {
		return jaccard
	}
	frequency := freqSum / float64(intersection) * 100
	return jaccard*0.7 + frequency*0.3
}

// round2 rounds to two decimals for presentation. The min_score floor is
// applied to the unrounded score.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
