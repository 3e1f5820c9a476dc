// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processCmd = &cobra.Command{
	Use:   "process [book-ids...]",
	Short: "Clean raw books and divide them into chapters",
	Long: `Process strips the Project Gutenberg header and license from each raw
book, writes the clean text to data/books/, and divides it into chapter files
under data/book_chapters/. With no book ids every raw book is processed.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().Int("min-chapter-lines", 0, "lines a chapter needs before a double blank line ends it (default 20)")
	processCmd.Flags().Int("max-chapter-lines", 0, "lines after which the next blank line ends a chapter (default 3000)")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ids, err := bookIDs(args)
	if err != nil {
		return err
	}
	cfg := pipelineConfig()
	layout := layoutFromConfig()
	if err := layout.Init(); err != nil {
		return err
	}
	if len(ids) == 0 {
		if ids, err = layout.ListBooks(); err != nil {
			return err
		}
	}

	var failed int
	for _, id := range ids {
		n, err := layout.ProcessBook(id, cfg.Corpus)
		if err != nil {
			logger.Warn("processing book failed", zap.Int("book", id), zap.Error(err))
			fmt.Fprintf(os.Stdout, "failed:  %d (%v)\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "processed: %d (%d chapters)\n", id, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d book(s) failed processing", failed)
	}
	return nil
}
