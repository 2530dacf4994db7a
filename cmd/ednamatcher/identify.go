package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <sequence>",
	Short: "Identify the species of a single eDNA sequence",
	Long: `Builds the reference index from the configured corpus, scores the given
sequence against every species, and prints the ranked candidates.`,
	Args: cobra.ExactArgs(1),
	Run:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) {
	sequence := strings.TrimSpace(args[0])
	if sequence == "" {
		log.Fatalln("no sequence passed")
	}
	if !validSequence(sequence) {
		log.Fatalln("invalid sequence: only A, T, G, C, N characters are allowed")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	matches, err := eng.Match(sequence)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(matches) == 0 {
		fmt.Printf("no matches found above %g%% similarity threshold\n", eng.Options().MinScore)
		return
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "rank\tspecies\tcommon name\tphylum\tscore\tconfidence\n")
	for i, m := range matches {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%.2f%%\t%s\n",
			i+1, m.ScientificName, m.CommonName, m.Phylum, m.MatchingScore, strings.ToUpper(string(m.ConfidenceLevel)))
	}
	writer.Flush()
}

// validSequence mirrors the upstream validation rule: bases restricted
// to A, T, G, C and the ambiguity code N, case-insensitive.
func validSequence(sequence string) bool {
	for _, r := range strings.ToUpper(sequence) {
		switch r {
		case 'A', 'T', 'G', 'C', 'N':
		default:
			return false
		}
	}
	return true
}
