// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/detok"
)

var detokenizeCmd = &cobra.Command{
	Use:   "detokenize [file]",
	Short: "Turn tokenized model output back into readable text",
	Long: `Detokenize reads tokenized summary lines from a file (or stdin), strips
the sentence and section markers, rejoins punctuation, contractions, and
quotes, restores capitalization, and drops the trailing partial sentence.
One output line is written per input line, in input order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetokenize,
}

func init() {
	detokenizeCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	detokenizeCmd.Flags().Int("workers", 0, "maximum detokenizer goroutines (0 = one per line)")

	rootCmd.AddCommand(detokenizeCmd)
}

func runDetokenize(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	text, err := inputText(path)
	if err != nil {
		return err
	}

	out := os.Stdout
	if name := viper.GetString("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	_, err = detok.ProcessOutput(cmd.Context(), strings.NewReader(text), out, viper.GetInt("workers"))
	return err
}
