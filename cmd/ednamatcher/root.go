package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/RewanshChoudhary/OceanRepo/internal/server"
	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

const version = "0.3.0"

var (
	configPath string

	// corpus/engine overrides on top of the config file
	flagSequences string
	flagTaxonomy  string
	flagK         int
	flagMinScore  float64
	flagTopN      int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "ednamatcher",
	Short:   "K-mer based eDNA species identification against a marine reference corpus",
	Version: version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagSequences, "sequences", "", "reference sequence file (FASTA or JSON), overrides config")
	rootCmd.PersistentFlags().StringVar(&flagTaxonomy, "taxonomy", "", "taxonomy JSON file, overrides config")
	rootCmd.PersistentFlags().IntVar(&flagK, "k", 0, "k-mer size, overrides config (default 5)")
	rootCmd.PersistentFlags().Float64Var(&flagMinScore, "min-score", 0, "minimum matching score threshold, overrides config (default 50)")
	rootCmd.PersistentFlags().IntVar(&flagTopN, "top-n", 0, "number of top matches to return, overrides config (default 5)")
}

// loadConfig reads the YAML config and layers the command line overrides
// on top.
func loadConfig() (*server.Config, error) {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if flagSequences != "" {
		cfg.Corpus.Sequences = flagSequences
	}
	if flagTaxonomy != "" {
		cfg.Corpus.Taxonomy = flagTaxonomy
	}
	if flagK != 0 {
		cfg.Engine.K = flagK
	}
	if flagMinScore != 0 {
		cfg.Engine.MinScore = flagMinScore
	}
	if flagTopN != 0 {
		cfg.Engine.TopN = flagTopN
	}
	return cfg, nil
}

// buildEngine creates the engine and performs the initial corpus load.
func buildEngine(cfg *server.Config) (*engine.Engine, error) {
	eng, err := engine.New(cfg.EngineOptions())
	if err != nil {
		return nil, err
	}

	sequences, err := cfg.Corpus.SequenceSource()
	if err != nil {
		return nil, err
	}
	taxonomy, err := cfg.Corpus.TaxonomySource()
	if err != nil {
		return nil, err
	}
	if err := eng.Rebuild(sequences, taxonomy); err != nil {
		return nil, fmt.Errorf("building reference index: %w", err)
	}
	return eng, nil
}
