// Package server implements the OceanRepo species identification API.
//
// This file defines the Go structs that correspond to the YAML server
// configuration. Parsing is strict (unknown fields are rejected) and the
// raw bytes go through environment variable expansion first, so secrets
// like the auth token can be kept out of the file.
package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

// Config is the top-level server configuration.
type Config struct {
	HTTPAddr  string       `yaml:"http_addr"`
	AuthToken string       `yaml:"auth_token"`
	Corpus    CorpusConfig `yaml:"corpus"`
	Engine    EngineConfig `yaml:"engine"`
}

// CorpusConfig locates the reference corpus on disk.
type CorpusConfig struct {
	// Sequences is the reference sequence file. FASTA (.fasta, .fa) and
	// JSON (.json) formats are recognized by extension.
	Sequences string `yaml:"sequences"`

	// Taxonomy is the JSON species metadata table. Optional; species
	// without metadata fall back to Unknown display fields.
	Taxonomy string `yaml:"taxonomy"`

	// Watch enables the fsnotify corpus watcher: a write to either file
	// triggers an asynchronous index rebuild.
	Watch bool `yaml:"watch"`
}

// EngineConfig carries the matcher defaults.
type EngineConfig struct {
	K            int     `yaml:"k"`
	MinScore     float64 `yaml:"min_score"`
	TopN         int     `yaml:"top_n"`
	MaxTopN      int     `yaml:"max_top_n"`
	BatchWorkers int     `yaml:"batch_workers"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: ":9091",
		Engine: EngineConfig{
			K:            5,
			MinScore:     50.0,
			TopN:         5,
			MaxTopN:      20,
			BatchWorkers: 1,
		},
	}
}

// LoadConfig reads and parses the YAML configuration file. An empty path
// yields DefaultConfig. Unset engine fields inherit the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	decoder := yaml.NewDecoder(strings.NewReader(expanded))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.HTTPAddr == "" {
		c.HTTPAddr = def.HTTPAddr
	}
	if c.Engine.K == 0 {
		c.Engine.K = def.Engine.K
	}
	if c.Engine.MinScore == 0 {
		c.Engine.MinScore = def.Engine.MinScore
	}
	if c.Engine.TopN == 0 {
		c.Engine.TopN = def.Engine.TopN
	}
	if c.Engine.MaxTopN == 0 {
		c.Engine.MaxTopN = def.Engine.MaxTopN
	}
	if c.Engine.BatchWorkers == 0 {
		c.Engine.BatchWorkers = def.Engine.BatchWorkers
	}
}

// EngineOptions converts the config into validated matcher options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		K:        c.Engine.K,
		MinScore: c.Engine.MinScore,
		TopN:     c.Engine.TopN,
	}
}

// SequenceSource builds the reference corpus provider from the configured
// sequence file, selected by extension.
func (c *CorpusConfig) SequenceSource() (corpus.SequenceSource, error) {
	if c.Sequences == "" {
		return nil, fmt.Errorf("no reference sequence file configured")
	}
	switch strings.ToLower(filepath.Ext(c.Sequences)) {
	case ".fasta", ".fa", ".fna":
		return corpus.NewFASTAFile(c.Sequences), nil
	case ".json":
		return corpus.NewJSONSequenceFile(c.Sequences), nil
	default:
		return nil, fmt.Errorf("unrecognized sequence file format '%s'", filepath.Ext(c.Sequences))
	}
}

// TaxonomySource loads the taxonomy table. A missing configuration is not
// an error: all species resolve to Unknown metadata.
func (c *CorpusConfig) TaxonomySource() (corpus.TaxonomySource, error) {
	if c.Taxonomy == "" {
		return corpus.TaxonomyMap{}, nil
	}
	return corpus.LoadTaxonomyFile(c.Taxonomy)
}
