package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFillDefaults(t *testing.T) {
	meta := SpeciesMetadata{
		SpeciesID:      "sp_001",
		ScientificName: "Thunnus albacares",
	}.FillDefaults()

	if meta.ScientificName != "Thunnus albacares" {
		t.Errorf("ScientificName overwritten: %q", meta.ScientificName)
	}
	for name, got := range map[string]string{
		"CommonName": meta.CommonName,
		"Phylum":     meta.Phylum,
		"Kingdom":    meta.Kingdom,
		"Class":      meta.Class,
		"Order":      meta.Order,
		"Family":     meta.Family,
		"Genus":      meta.Genus,
	} {
		if got != Unknown {
			t.Errorf("%s = %q, want Unknown", name, got)
		}
	}
}

func TestTaxonomyMapLookup(t *testing.T) {
	table := TaxonomyMap{
		"sp_001": {ScientificName: "Thunnus albacares", CommonName: "Yellowfin tuna"},
	}

	meta, ok := table.Lookup("sp_001")
	if !ok {
		t.Fatal("expected lookup hit")
	}
	if meta.SpeciesID != "sp_001" {
		t.Errorf("SpeciesID = %q", meta.SpeciesID)
	}
	if meta.Phylum != Unknown {
		t.Errorf("Phylum = %q, want Unknown default", meta.Phylum)
	}

	if _, ok := table.Lookup("missing"); ok {
		t.Error("expected miss for unknown species")
	}
}

func TestParseFASTA(t *testing.T) {
	input := `>sp_001 Thunnus albacares mitochondrial COI
ATGCGATCG
GATTACA
>sp_002
CGATCGATT

>
TTTT
`
	records, err := ParseFASTA(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("parsed %d records, want 2 (headerless record skipped)", len(records))
	}
	if records[0].SpeciesID != "sp_001" || records[0].Sequence != "ATGCGATCGGATTACA" {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].SpeciesID != "sp_002" || records[1].Sequence != "CGATCGATT" {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestFASTAFileSequences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.fasta")
	content := ">sp_001 desc\nATGCG\n>sp_002\nCGATC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := NewFASTAFile(path).Sequences()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if _, err := NewFASTAFile(filepath.Join(t.TempDir(), "missing.fasta")).Sequences(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJSONSequenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.json")
	content := `[
		{"species_id": "sp_001", "sequence": "ATGCGATCG"},
		{"species_id": "sp_002", "sequence": "CGATCGATT"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := NewJSONSequenceFile(path).Sequences()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].SpeciesID != "sp_001" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadTaxonomyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	content := `[
		{"species_id": "sp_001", "species": "Thunnus albacares", "common_name": "Yellowfin tuna", "phylum": "Chordata", "kingdom": "Animalia"},
		{"species_id": "", "species": "ignored"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTaxonomyFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 {
		t.Fatalf("table size = %d, want 1", len(table))
	}

	meta, ok := table.Lookup("sp_001")
	if !ok {
		t.Fatal("expected sp_001")
	}
	if meta.ScientificName != "Thunnus albacares" {
		t.Errorf("ScientificName = %q (mapped from the 'species' field)", meta.ScientificName)
	}
	if meta.Kingdom != "Animalia" || meta.Class != Unknown {
		t.Errorf("meta = %+v", meta)
	}
}

func TestLoadTestSequences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_sequences.json")
	content := `{
		"test_sequences": [
			{"test_id": "t1", "sequence": "ATGCGATCG", "expected_match": "sp_001", "description": "tuna fragment"},
			{"test_id": "t2", "sequence": "AAAA"}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	seqs, err := LoadTestSequences(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d test sequences, want 2", len(seqs))
	}
	if seqs[0].ExpectedMatch != "sp_001" || seqs[1].ExpectedMatch != "" {
		t.Errorf("sequences = %+v", seqs)
	}
}
