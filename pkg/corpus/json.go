package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONSequenceFile is a SequenceSource backed by a JSON array of
// reference records: [{"species_id": "...", "sequence": "..."}, ...].
type JSONSequenceFile struct {
	Path string
}

func NewJSONSequenceFile(path string) *JSONSequenceFile {
	return &JSONSequenceFile{Path: path}
}

func (f *JSONSequenceFile) Sequences() ([]ReferenceRecord, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read sequence file '%s': %w", f.Path, err)
	}

	var records []ReferenceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON in sequence file '%s': %w", f.Path, err)
	}
	return records, nil
}

// LoadTaxonomyFile parses a JSON taxonomy corpus into a TaxonomyMap.
//
// The file is an array of records keyed by species_id. The scientific
// name is carried in the "species" field, matching the field naming of
// the platform's taxonomy collection.
func LoadTaxonomyFile(path string) (TaxonomyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read taxonomy file '%s': %w", path, err)
	}

	var raw []struct {
		SpeciesID  string `json:"species_id"`
		Species    string `json:"species"`
		CommonName string `json:"common_name"`
		Phylum     string `json:"phylum"`
		Kingdom    string `json:"kingdom"`
		Class      string `json:"class"`
		Order      string `json:"order"`
		Family     string `json:"family"`
		Genus      string `json:"genus"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in taxonomy file '%s': %w", path, err)
	}

	table := make(TaxonomyMap, len(raw))
	for _, r := range raw {
		if r.SpeciesID == "" {
			continue
		}
		table[r.SpeciesID] = SpeciesMetadata{
			SpeciesID:      r.SpeciesID,
			ScientificName: r.Species,
			CommonName:     r.CommonName,
			Phylum:         r.Phylum,
			Kingdom:        r.Kingdom,
			Class:          r.Class,
			Order:          r.Order,
			Family:         r.Family,
			Genus:          r.Genus,
		}
	}
	return table, nil
}

// TestSequence is one entry of a batch test file, optionally carrying the
// expected species for accuracy measurement.
type TestSequence struct {
	TestID        string `json:"test_id"`
	Sequence      string `json:"sequence"`
	ExpectedMatch string `json:"expected_match,omitempty"`
	Description   string `json:"description,omitempty"`
}

// LoadTestSequences parses a batch test file of the form
// {"test_sequences": [{"test_id": ..., "sequence": ..., "expected_match": ...}]}.
func LoadTestSequences(path string) ([]TestSequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read test sequence file '%s': %w", path, err)
	}

	var file struct {
		TestSequences []TestSequence `json:"test_sequences"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid JSON in test sequence file '%s': %w", path, err)
	}
	return file.TestSequences, nil
}
