// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <book-id>",
	Short: "Compare a generated summary with the reference summary",
	Long: `Analyze scores results/summaries/<id><variant>.txt against the reference
summary in data/summaries/<id>.txt with term-frequency cosine similarity and
ROUGE-1, ROUGE-2, and ROUGE-L. Scores are written to
results/analysis/<id><variant>.csv and recorded in the results database.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("variant", "-all", "summary variant extension, e.g. -all or -en-ex")
	analyzeCmd.Flags().Bool("no-index", false, "do not record scores in the results database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("book id %q is not a number", args[0])
	}
	variant := viper.GetString("variant")
	layout := layoutFromConfig()

	scores, err := analysis.CompareFiles(layout.ReferenceSummary(id), layout.SummaryFile(id, variant))
	if err != nil {
		return err
	}
	path := layout.AnalysisFile(id, variant)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating analysis directory: %w", err)
	}
	if err := analysis.SaveCSV(path, scores); err != nil {
		return err
	}

	if !viper.GetBool("no-index") {
		store, err := openResults()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveScores(cmd.Context(), id, variant, scores); err != nil {
			return err
		}
	}

	for _, s := range scores {
		fmt.Fprintf(os.Stdout, "%-20s  %.4f\n", s.Metric, s.Value)
	}
	fmt.Fprintf(os.Stdout, "\nWrote %s\n", path)
	return nil
}
