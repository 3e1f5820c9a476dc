// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/corpus"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Download books that have a reference summary",
	Long: `Dataset matches the Project Gutenberg catalog with the CMU book summary
corpus on title, confirming the author by fuzzy match. Each matched book is
downloaded from a Gutenberg mirror into data/raw_books/, its reference summary
is saved to data/summaries/, and book and summary statistics are written to
data/data_stats.csv. Books already downloaded are skipped.`,
	RunE: runDataset,
}

func init() {
	f := datasetCmd.Flags()
	f.String("catalog", "data/catalog.csv", "Project Gutenberg metadata CSV (id, title, author columns)")
	f.String("summaries", "data/booksummaries.txt", "CMU book summary TSV")
	f.String("mirror", "", "Project Gutenberg mirror base URL (default http://aleph.gutenberg.org)")
	f.Float64("rate", 1, "maximum downloads per second")
	f.Duration("timeout", 0, "HTTP request timeout (default 60s)")
	f.Int("author-threshold", 0, "minimum author match score (default 40)")
	f.Int("limit", 0, "download at most this many matched books (0 = all)")

	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string) error {
	catalogFile, err := os.Open(viper.GetString("catalog"))
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalogFile.Close()
	catalog, err := corpus.ReadCatalog(catalogFile)
	if err != nil {
		return err
	}

	summaryFile, err := os.Open(viper.GetString("summaries"))
	if err != nil {
		return fmt.Errorf("opening summaries: %w", err)
	}
	defer summaryFile.Close()
	summaries, err := corpus.ReadSummaries(summaryFile)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	matches := corpus.MatchTitles(catalog, summaries, cfg.Download.AuthorThreshold)
	if limit := viper.GetInt("limit"); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	fmt.Fprintf(os.Stdout, "Matched %d of %d summaries against %d catalog books\n",
		len(matches), len(summaries), len(catalog))

	layout := layoutFromConfig()
	b := &corpus.Builder{
		Layout:  layout,
		Fetcher: corpus.NewDownloader(&http.Client{Timeout: cfg.Download.Timeout}, cfg.Download, layout, logger),
		Log:     logger,
	}
	result, err := b.Build(cmd.Context(), matches, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d book(s) failed download", result.Failed)
	}
	return nil
}
