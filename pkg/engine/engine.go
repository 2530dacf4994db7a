// Package engine implements the k-mer based eDNA species identification
// core: reference index construction, query matching, confidence
// classification, and batch runs.
//
// The engine holds one immutable ReferenceIndex at a time. Building is
// the only heavy operation; once built, arbitrarily many Match calls may
// run concurrently against the shared index. Rebuild constructs a fresh
// index from the corpus and swaps it in atomically, so matches in flight
// finish against the index they started with.
//
// Basic usage:
//
//	eng, err := engine.New(engine.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := eng.Rebuild(sequences, taxonomy); err != nil {
//	    log.Fatal(err)
//	}
//	matches, err := eng.Match("ATGCGATCGATCG")
package engine

import (
	"sync"
	"time"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
)

// Engine wraps a swappable ReferenceIndex with the session's default
// matching options.
type Engine struct {
	opts Options

	mu    sync.RWMutex
	index *ReferenceIndex
}

// IndexStats describes the currently loaded index.
type IndexStats struct {
	SpeciesCount   int       `json:"species_count"`
	ProfiledKmers  int       `json:"profiled_kmers"`
	KmerSize       int       `json:"k_mer_size"`
	MinScore       float64   `json:"min_score_threshold"`
	TopN           int       `json:"top_n"`
	BuiltAt        time.Time `json:"built_at"`
	IndexAvailable bool      `json:"index_available"`
}

// New creates an Engine with no index loaded yet. Options are validated
// up front; every later Match call uses them as defaults.
func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns the engine's configured defaults.
func (e *Engine) Options() Options { return e.opts }

// Rebuild constructs a new index from the corpus and swaps it in.
func (e *Engine) Rebuild(sequences corpus.SequenceSource, taxonomy corpus.TaxonomySource) error {
	idx, err := BuildIndex(sequences, taxonomy, e.opts.K)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.index = idx
	e.mu.Unlock()
	return nil
}

// Index returns the current index, or nil when none has been built. The
// returned index is immutable and safe to query after a later Rebuild.
func (e *Engine) Index() *ReferenceIndex {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Match scores a query with the engine's default TopN and MinScore.
func (e *Engine) Match(querySequence string) ([]ScoredMatch, error) {
	return e.MatchWith(querySequence, e.opts.TopN, e.opts.MinScore)
}

// MatchWith scores a query with per-call overrides. An engine without a
// built index behaves as an empty index: every query returns an empty
// list.
func (e *Engine) MatchWith(querySequence string, topN int, minScore float64) ([]ScoredMatch, error) {
	idx := e.Index()
	if idx == nil {
		idx = &ReferenceIndex{k: e.opts.K}
	}
	return idx.Match(querySequence, topN, minScore)
}

// RunBatch applies MatchWith across many queries, serially when workers
// is below 2.
func (e *Engine) RunBatch(queries []BatchQuery, topN int, minScore float64, workers int) (*BatchResult, error) {
	idx := e.Index()
	if idx == nil {
		idx = &ReferenceIndex{k: e.opts.K}
	}
	return idx.RunBatch(queries, topN, minScore, workers)
}

// Stats reports the shape of the loaded index together with the engine
// defaults.
func (e *Engine) Stats() IndexStats {
	stats := IndexStats{
		KmerSize: e.opts.K,
		MinScore: e.opts.MinScore,
		TopN:     e.opts.TopN,
	}

	idx := e.Index()
	if idx == nil {
		return stats
	}
	stats.IndexAvailable = true
	stats.SpeciesCount = idx.Len()
	stats.ProfiledKmers = idx.TotalProfiledKmers()
	stats.BuiltAt = idx.BuiltAt()
	return stats
}
