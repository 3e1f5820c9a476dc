// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/results"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Query and export the results database",
	Long: `Results reads the SQLite database in results/index/ that records every
generated summary, the entities of each book, and analysis scores. Use the
subcommands to search summaries, list entities, or export.`,
}

// --- search subcommand ---

var resultsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over generated summaries",
	Long: `Search matches summaries with SQLite full-text search. Without a query
it lists stored summaries. Filter by --book or --variant.`,
	RunE: runResultsSearch,
}

func runResultsSearch(cmd *cobra.Command, args []string) error {
	store, err := openResults()
	if err != nil {
		return err
	}
	defer store.Close()

	found, err := store.Search(cmd.Context(), queryOptsFromFlags(args))
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}
	if len(found) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-7s  %-14s  %-30s  %s\n", "Rank", "Book", "Variant", "Title", "Match")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, r := range found {
		title := r.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		match := r.Snippet
		if match == "" {
			match = firstLine(r.Content)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-7d  %-14s  %-30s  %s\n", i+1, r.BookID, r.Variant, title, match)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(found))
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > 40 {
		line = line[:37] + "..."
	}
	return line
}

// --- entities subcommand ---

var resultsEntitiesCmd = &cobra.Command{
	Use:   "entities <book-id>",
	Short: "List the stored characters and key terms of a book",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsEntities,
}

func runResultsEntities(cmd *cobra.Command, args []string) error {
	ids, err := bookIDs(args)
	if err != nil {
		return err
	}
	store, err := openResults()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := results.EntityFilter{BookID: ids[0], Kind: types.EntityKind(viper.GetString("kind"))}
	if cmd.Flags().Changed("chapter") {
		ch := viper.GetInt("chapter")
		filter.Chapter = &ch
	}
	records, err := store.Entities(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		fmt.Println("No entities found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-8s  %-10s  %-30s  %s\n", "Chapter", "Kind", "Name", "Count")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
	for _, r := range records {
		chapter := "book"
		if r.Chapter != types.BookLevel {
			chapter = fmt.Sprint(r.Chapter)
		}
		fmt.Fprintf(os.Stdout, "%-8s  %-10s  %-30s  %d\n", chapter, r.Kind, r.Name, r.Count)
	}
	return nil
}

// --- export subcommand ---

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export summaries and scores to YAML or JSON",
	Long: `Export writes stored summaries with their analysis scores (or a filtered
subset) to results/index/export.yaml or export.json.`,
	RunE: runResultsExport,
}

func runResultsExport(cmd *cobra.Command, args []string) error {
	store, err := openResults()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(args)
	var path string
	switch format := viper.GetString("format"); format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(args []string) results.QueryOptions {
	query := viper.GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	return results.QueryOptions{
		Query:      query,
		BookID:     viper.GetInt("book"),
		Variant:    viper.GetString("variant"),
		MaxResults: viper.GetInt("limit"),
	}
}

func init() {
	resultsCmd.PersistentFlags().Int("max-results", 20, "default number of search results")

	resultsSearchCmd.Flags().String("query", "", "full-text search query")
	resultsSearchCmd.Flags().Int("book", 0, "filter by book id")
	resultsSearchCmd.Flags().String("variant", "", "filter by summary variant, e.g. -all")
	resultsSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	resultsSearchCmd.Flags().Bool("json", false, "output results as JSON")

	resultsEntitiesCmd.Flags().Int("chapter", types.BookLevel, "chapter number (-1 = whole book)")
	resultsEntitiesCmd.Flags().String("kind", "", "filter by kind: character or key_term")
	resultsEntitiesCmd.Flags().Bool("json", false, "output entities as JSON")

	resultsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	resultsExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	resultsExportCmd.Flags().Int("book", 0, "filter by book id")
	resultsExportCmd.Flags().String("variant", "", "filter by summary variant")

	resultsCmd.AddCommand(resultsSearchCmd)
	resultsCmd.AddCommand(resultsEntitiesCmd)
	resultsCmd.AddCommand(resultsExportCmd)

	rootCmd.AddCommand(resultsCmd)
}
