package engine

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// BatchQuery is one named query of a batch run. ExpectedMatch optionally
// carries a ground-truth species_id used for accuracy measurement.
type BatchQuery struct {
	ID            string `json:"test_id"`
	Sequence      string `json:"sequence"`
	ExpectedMatch string `json:"expected_match,omitempty"`
	Description   string `json:"description,omitempty"`
}

// BatchItemResult is the outcome for a single batch query. Error is set
// only for structurally invalid entries (an empty sequence); a query
// that simply matches nothing has an empty Matches list and no error.
type BatchItemResult struct {
	Matches []ScoredMatch `json:"matches"`
	Error   string        `json:"error,omitempty"`
}

// BatchReport aggregates a batch run. Accuracy is only meaningful when
// WithExpectation > 0; it reports 0 otherwise.
type BatchReport struct {
	TotalQueries    int     `json:"total_queries"`
	WithExpectation int     `json:"with_expectation"`
	Correct         int     `json:"correct"`
	Accuracy        float64 `json:"accuracy"`
	MeanBestScore   float64 `json:"mean_best_score"`
	StdDevBestScore float64 `json:"stddev_best_score"`
}

// BatchResult holds per-query results keyed by query ID plus the
// aggregate report.
type BatchResult struct {
	Results map[string]BatchItemResult `json:"results"`
	Report  BatchReport                `json:"report"`
}

// RunBatch matches every query independently against the index. A failed
// or empty query never aborts the batch. Queries without an ID get a
// positional seq_N identifier.
//
// workers bounds the fan-out; values below 2 run the batch serially. The
// index is read-only, so parallel workers need no coordination beyond
// result collection.
func (idx *ReferenceIndex) RunBatch(queries []BatchQuery, topN int, minScore float64, workers int) (*BatchResult, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrConfig, topN)
	}
	if minScore < 0 || minScore > 100 {
		return nil, fmt.Errorf("%w: min_score must be in [0, 100], got %g", ErrConfig, minScore)
	}

	items := make([]BatchItemResult, len(queries))
	process := func(i int) {
		q := queries[i]
		if strings.TrimSpace(q.Sequence) == "" {
			items[i] = BatchItemResult{Matches: []ScoredMatch{}, Error: "empty sequence"}
			return
		}
		matches, err := idx.Match(q.Sequence, topN, minScore)
		if err != nil {
			// Options were validated above; per-item failures still must
			// not abort the batch.
			items[i] = BatchItemResult{Matches: []ScoredMatch{}, Error: err.Error()}
			return
		}
		items[i] = BatchItemResult{Matches: matches}
	}

	if workers > 1 && len(queries) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, workers)
		for i := range queries {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				process(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range queries {
			process(i)
		}
	}

	result := &BatchResult{
		Results: make(map[string]BatchItemResult, len(queries)),
		Report:  BatchReport{TotalQueries: len(queries)},
	}

	var bestScores []float64
	for i, q := range queries {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("seq_%d", i+1)
		}
		result.Results[id] = items[i]

		if len(items[i].Matches) > 0 {
			bestScores = append(bestScores, items[i].Matches[0].MatchingScore)
		}
		if q.ExpectedMatch == "" {
			continue
		}
		result.Report.WithExpectation++
		if len(items[i].Matches) > 0 && items[i].Matches[0].SpeciesID == q.ExpectedMatch {
			result.Report.Correct++
		}
	}

	if result.Report.WithExpectation > 0 {
		result.Report.Accuracy = float64(result.Report.Correct) / float64(result.Report.WithExpectation) * 100
	}
	if len(bestScores) > 0 {
		result.Report.MeanBestScore = stat.Mean(bestScores, nil)
	}
	if len(bestScores) > 1 {
		result.Report.StdDevBestScore = stat.StdDev(bestScores, nil)
	}

	return result, nil
}
