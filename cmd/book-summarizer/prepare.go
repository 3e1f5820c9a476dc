// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/abstractive"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [file]",
	Short: "Tokenize text into pointer-generator model input",
	Long: `Prepare folds text to lower-case ASCII, splits it into sentences and
tokens, and packs the sentences into segments. Each segment is written as one
input line for the pointer-generator model.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	prepareCmd.Flags().Int("segment-tokens", 0, "token budget of one model input line (default 200)")

	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	text, err := inputText(path)
	if err != nil {
		return err
	}

	p, err := abstractive.Prepare(text, pipelineConfig().Abstractive)
	if err != nil {
		return err
	}

	if name := viper.GetString("output"); name != "" {
		if err := os.WriteFile(name, []byte(p.Input), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "prepared %d segment(s) in %s\n", p.Segments, name)
		return nil
	}
	_, err = fmt.Fprint(os.Stdout, p.Input)
	return err
}
