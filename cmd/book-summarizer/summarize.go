// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/abstractive"
	"github.com/pdiddy/book-summarizer/internal/entity"
	"github.com/pdiddy/book-summarizer/internal/extractive"
	"github.com/pdiddy/book-summarizer/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [book-ids...]",
	Short: "Summarize books chapter by chapter",
	Long: `Summarize cleans each raw book, divides it into chapters, and writes a
summary with the selected features to results/summaries/<id><ext>.txt, where
<ext> names the features (-fl, -en, -ex, -ae, -aa, or -all).

With no book ids every book in data/raw_books/ is summarized. Existing
summaries are kept unless --overwrite is given.`,
	RunE: runSummarize,
}

func init() {
	f := summarizeCmd.Flags()
	f.Bool("entities", false, "include the characters and key terms of the book and of each chapter")
	f.Int("extractive", 0, "include N quoted sentences from each chapter (1-9)")
	f.Lookup("extractive").NoOptDefVal = "1"
	f.Bool("abstractive-extractive", false, "include a generated summary of a quote from each chapter")
	f.String("abstractive-abstractive", summary.LengthNone, "include a generated summary of each chapter: s (short) or l (long)")
	f.Lookup("abstractive-abstractive").NoOptDefVal = summary.LengthShort
	f.Bool("first-lines", false, "include the first lines of each chapter")
	f.Bool("analysis", false, "compare the summary with the reference summary")
	f.BoolP("overwrite", "w", false, "write over existing summaries")
	f.Bool("no-index", false, "do not record summaries in the results database")

	f.String("method", "luhn", "extractive method: luhn or lexrank")
	f.Int("min-chapter-lines", 0, "lines a chapter needs before a double blank line ends it (default 20)")
	f.Int("max-chapter-lines", 0, "lines after which the next blank line ends a chapter (default 3000)")
	f.Int("match-threshold", 0, "partial-ratio above which entity names are merged (default 80)")
	addModelFlags(summarizeCmd)

	rootCmd.AddCommand(summarizeCmd)
}

// addModelFlags registers the abstractive model flags on cmd.
func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("runtime", "container", "model runtime: container or command")
	f.String("image", "pointer-generator:latest", "container image running the model")
	f.String("model-dir", "model", "directory holding the pretrained model")
	f.StringSlice("model-command", nil, "local model command line (runtime=command)")
	f.Int("segment-tokens", 0, "token budget of one model input line (default 200)")
	f.Int("max-levels", 0, "maximum re-summarization passes (default 4)")
	f.Int("workers", 0, "maximum detokenizer goroutines (0 = one per line)")
}

func summaryOptions() summary.Options {
	return summary.Options{
		Entities:                   viper.GetBool("entities"),
		Extractive:                 viper.GetInt("extractive"),
		AbstractiveFromExtractive:  viper.GetBool("abstractive-extractive"),
		AbstractiveFromAbstractive: viper.GetString("abstractive-abstractive"),
		FirstLines:                 viper.GetBool("first-lines"),
		Analysis:                   viper.GetBool("analysis"),
		Overwrite:                  viper.GetBool("overwrite"),
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ids, err := bookIDs(args)
	if err != nil {
		return err
	}
	opts := summaryOptions()
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg := pipelineConfig()
	layout := layoutFromConfig()
	if err := layout.Init(); err != nil {
		return err
	}

	p := &summary.Pipeline{
		Layout:  layout,
		Corpus:  cfg.Corpus,
		Options: opts,
		Log:     logger,
	}
	if opts.NeedsExtractive() {
		if p.Extractive, err = extractive.New(cfg.Extractive.Method); err != nil {
			return err
		}
	}
	if opts.Entities {
		p.Entities = entity.NewExtractor(entity.ProseRecognizer{}, cfg.Entity)
	}
	if opts.NeedsModel() {
		model, err := abstractive.NewModel(cfg.Abstractive)
		if err != nil {
			return err
		}
		p.Abstractive = abstractive.New(model, cfg.Abstractive, logger)
	}
	if !viper.GetBool("no-index") {
		store, err := openResults()
		if err != nil {
			return err
		}
		defer store.Close()
		p.Store = store
	}

	result, err := p.Run(cmd.Context(), ids, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d book(s) failed summarization", result.Failed)
	}
	return nil
}
