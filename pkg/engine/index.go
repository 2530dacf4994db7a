package engine

import (
	"fmt"
	"time"

	"github.com/tidwall/btree"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
	"github.com/RewanshChoudhary/OceanRepo/pkg/kmer"
)

// ReferenceIndex maps every species of the reference corpus to its
// accumulated k-mer profile, plus an ordered species metadata table.
//
// The index is read-only after BuildIndex returns, so concurrent Match
// calls against a shared index need no locking. Rebuilding means running
// BuildIndex again and swapping the pointer (see Engine.Rebuild).
type ReferenceIndex struct {
	k        int
	profiles map[string]kmer.Profile

	// order records species discovery order in the sequence corpus. Match
	// iterates in this order, so candidates with equal scores keep a
	// deterministic (stable-sort) ordering for a given build.
	order []string

	// metadata is keyed by species_id; iteration via ListSpecies yields
	// records in ascending species_id order.
	metadata *btree.BTreeG[corpus.SpeciesMetadata]

	builtAt time.Time
}

func metadataLess(a, b corpus.SpeciesMetadata) bool {
	return a.SpeciesID < b.SpeciesID
}

// BuildIndex consumes the sequence and taxonomy corpora and produces a
// ready-to-query ReferenceIndex.
//
// Every species_id appearing in the sequence corpus ends up with an index
// entry and a metadata entry, even when no valid k-mer could be extracted
// from any of its sequences (the profile stays empty and the species can
// never score above zero) or when the taxonomy lookup comes back empty
// (all display fields default to Unknown). Malformed records never fail
// the build.
func BuildIndex(sequences corpus.SequenceSource, taxonomy corpus.TaxonomySource, k int) (*ReferenceIndex, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfig, k)
	}

	records, err := sequences.Sequences()
	if err != nil {
		return nil, fmt.Errorf("reading reference corpus: %w", err)
	}

	idx := &ReferenceIndex{
		k:        k,
		profiles: make(map[string]kmer.Profile),
		metadata: btree.NewBTreeG[corpus.SpeciesMetadata](metadataLess),
		builtAt:  time.Now(),
	}

	for _, rec := range records {
		if rec.SpeciesID == "" {
			continue
		}

		profile, known := idx.profiles[rec.SpeciesID]
		if !known {
			profile = make(kmer.Profile)
			idx.profiles[rec.SpeciesID] = profile
			idx.order = append(idx.order, rec.SpeciesID)

			meta, ok := taxonomy.Lookup(rec.SpeciesID)
			if !ok {
				meta = corpus.UnknownSpecies(rec.SpeciesID)
			}
			idx.metadata.Set(meta)
		}

		profile.Merge(kmer.Extract(rec.Sequence, k))
	}

	return idx, nil
}

// K returns the k-mer length the index was built with.
func (idx *ReferenceIndex) K() int { return idx.k }

// Len returns the number of indexed species.
func (idx *ReferenceIndex) Len() int { return len(idx.profiles) }

// BuiltAt returns the construction time of the index.
func (idx *ReferenceIndex) BuiltAt() time.Time { return idx.builtAt }

// Profile returns the accumulated k-mer profile for a species, or nil
// when the species is not indexed.
func (idx *ReferenceIndex) Profile(speciesID string) kmer.Profile {
	return idx.profiles[speciesID]
}

// Metadata returns the display metadata for a species. Unindexed species
// resolve to the all-Unknown record rather than an error.
func (idx *ReferenceIndex) Metadata(speciesID string) corpus.SpeciesMetadata {
	meta, ok := idx.metadata.Get(corpus.SpeciesMetadata{SpeciesID: speciesID})
	if !ok {
		return corpus.UnknownSpecies(speciesID)
	}
	return meta
}

// HasSpecies reports whether a species is present in the index.
func (idx *ReferenceIndex) HasSpecies(speciesID string) bool {
	_, ok := idx.profiles[speciesID]
	return ok
}

// ListSpecies returns the metadata of every indexed species in ascending
// species_id order.
func (idx *ReferenceIndex) ListSpecies() []corpus.SpeciesMetadata {
	out := make([]corpus.SpeciesMetadata, 0, idx.metadata.Len())
	idx.metadata.Scan(func(meta corpus.SpeciesMetadata) bool {
		out = append(out, meta)
		return true
	})
	return out
}

// TotalProfiledKmers returns the number of distinct k-mers summed over
// all species profiles.
func (idx *ReferenceIndex) TotalProfiledKmers() int {
	total := 0
	for _, p := range idx.profiles {
		total += p.Distinct()
	}
	return total
}
