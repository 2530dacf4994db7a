// Package corpus defines the reference data consumed by the matching
// engine and the file loaders that produce it.
//
// The engine itself only needs two things from the outside world: an
// iterable of reference sequence records and a keyed taxonomy lookup.
// Both are modeled as small interfaces here so the engine stays agnostic
// of where the corpus actually lives (flat files in this repository, a
// document store in the original platform).
package corpus

// Unknown is the fallback value for every taxonomy field that is missing
// from the metadata corpus.
const Unknown = "Unknown"

// ReferenceRecord is a single stored eDNA sequence previously associated
// with a species. Records are immutable once loaded for a session.
type ReferenceRecord struct {
	SpeciesID string `json:"species_id"`
	Sequence  string `json:"sequence"`
}

// SpeciesMetadata is the display metadata attached to a species_id.
// Fields beyond the scientific name triple are optional in the corpus and
// default to Unknown.
type SpeciesMetadata struct {
	SpeciesID      string `json:"species_id"`
	ScientificName string `json:"scientific_name"`
	CommonName     string `json:"common_name"`
	Phylum         string `json:"phylum"`
	Kingdom        string `json:"kingdom,omitempty"`
	Class          string `json:"class,omitempty"`
	Order          string `json:"order,omitempty"`
	Family         string `json:"family,omitempty"`
	Genus          string `json:"genus,omitempty"`
}

// FillDefaults replaces every empty taxonomy field with Unknown. All
// metadata handed out by a TaxonomySource goes through this single
// normalization point, so callers never re-derive fallback behavior.
func (m SpeciesMetadata) FillDefaults() SpeciesMetadata {
	fields := []*string{
		&m.ScientificName, &m.CommonName, &m.Phylum,
		&m.Kingdom, &m.Class, &m.Order, &m.Family, &m.Genus,
	}
	for _, f := range fields {
		if *f == "" {
			*f = Unknown
		}
	}
	return m
}

// UnknownSpecies returns the all-Unknown metadata record for a species_id
// absent from the taxonomy corpus. Absence is never an error.
func UnknownSpecies(speciesID string) SpeciesMetadata {
	return SpeciesMetadata{SpeciesID: speciesID}.FillDefaults()
}

// SequenceSource yields the reference sequence corpus.
type SequenceSource interface {
	Sequences() ([]ReferenceRecord, error)
}

// TaxonomySource resolves species metadata by species_id. Missing keys
// must report ok=false rather than failing; the engine substitutes
// UnknownSpecies.
type TaxonomySource interface {
	Lookup(speciesID string) (meta SpeciesMetadata, ok bool)
}

// Records is an in-memory SequenceSource, convenient for tests and for
// callers that already hold the corpus.
type Records []ReferenceRecord

func (r Records) Sequences() ([]ReferenceRecord, error) { return r, nil }

// TaxonomyMap is an in-memory TaxonomySource.
type TaxonomyMap map[string]SpeciesMetadata

func (t TaxonomyMap) Lookup(speciesID string) (SpeciesMetadata, bool) {
	meta, ok := t[speciesID]
	if !ok {
		return SpeciesMetadata{}, false
	}
	meta.SpeciesID = speciesID
	return meta.FillDefaults(), true
}
