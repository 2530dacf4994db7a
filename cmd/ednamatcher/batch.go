package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RewanshChoudhary/OceanRepo/pkg/corpus"
	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <test-file.json>",
	Short: "Run a batch identification over a test sequence file",
	Long: `Reads a JSON test file ({"test_sequences": [...]}), identifies every
sequence against the configured corpus, and prints the per-query best
matches together with an accuracy report for entries that carry an
expected_match.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "parallel workers for the batch run")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) {
	tests, err := corpus.LoadTestSequences(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(tests) == 0 {
		log.Fatalf("no test sequences in '%s'", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	queries := make([]engine.BatchQuery, len(tests))
	for i, t := range tests {
		queries[i] = engine.BatchQuery{
			ID:            t.TestID,
			Sequence:      t.Sequence,
			ExpectedMatch: t.ExpectedMatch,
			Description:   t.Description,
		}
	}

	opts := eng.Options()
	result, err := eng.RunBatch(queries, opts.TopN, opts.MinScore, batchWorkers)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ids := make([]string, 0, len(result.Results))
	for id := range result.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "test\tbest match\tscore\tconfidence\tnote\n")
	for _, id := range ids {
		item := result.Results[id]
		switch {
		case item.Error != "":
			fmt.Fprintf(writer, "%s\t-\t-\t-\t%s\n", id, item.Error)
		case len(item.Matches) == 0:
			fmt.Fprintf(writer, "%s\t-\t-\t-\tno match above threshold\n", id)
		default:
			best := item.Matches[0]
			fmt.Fprintf(writer, "%s\t%s (%s)\t%.2f%%\t%s\t\n",
				id, best.ScientificName, best.SpeciesID, best.MatchingScore, best.ConfidenceLevel)
		}
	}
	writer.Flush()

	report := result.Report
	fmt.Printf("\nqueries: %d  mean best score: %.2f  stddev: %.2f\n",
		report.TotalQueries, report.MeanBestScore, report.StdDevBestScore)
	if report.WithExpectation > 0 {
		fmt.Printf("accuracy: %d/%d correct (%.2f%%)\n",
			report.Correct, report.WithExpectation, report.Accuracy)
	}
}
