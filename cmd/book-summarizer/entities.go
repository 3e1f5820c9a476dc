// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/entity"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities <book-id>",
	Short: "List the characters and key terms of a processed book",
	Long: `Entities runs named-entity recognition over a cleaned book and prints
its characters and key terms, most mentioned first. Similar names are merged
by fuzzy matching.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntities,
}

func init() {
	entitiesCmd.Flags().Int("match-threshold", 0, "partial-ratio above which entity names are merged (default 80)")
	entitiesCmd.Flags().Bool("json", false, "output entities as JSON")

	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("book id %q is not a number", args[0])
	}
	layout := layoutFromConfig()
	text, err := os.ReadFile(layout.Book(id))
	if err != nil {
		return fmt.Errorf("reading book %d (run process first): %w", id, err)
	}

	e := entity.NewExtractor(entity.ProseRecognizer{}, pipelineConfig().Entity)
	found, err := e.FindBook(string(text))
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"characters": entity.Sorted(found.Characters),
			"key_terms":  entity.Sorted(found.KeyTerms),
		})
	}

	fmt.Fprintln(os.Stdout, entity.Sentence(found.Characters, true, true))
	fmt.Fprintln(os.Stdout, entity.Sentence(found.KeyTerms, true, false))
	fmt.Fprintf(os.Stdout, "\n%-30s  %-10s  %s\n", "Name", "Kind", "Count")
	for _, ec := range entity.Sorted(found.Characters) {
		fmt.Fprintf(os.Stdout, "%-30s  %-10s  %d\n", ec.Name, "character", ec.Count)
	}
	for _, ec := range entity.Sorted(found.KeyTerms) {
		fmt.Fprintf(os.Stdout, "%-30s  %-10s  %d\n", ec.Name, "key term", ec.Count)
	}
	return nil
}
