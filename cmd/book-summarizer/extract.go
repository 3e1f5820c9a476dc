// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/extractive"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the most representative sentences of a text",
	Long: `Extract ranks the sentences of a text file with the Luhn or LexRank
method and prints the top sentences in document order, one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntP("sentences", "n", 1, "number of sentences to extract")
	extractCmd.Flags().String("method", "luhn", "extractive method: luhn or lexrank")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	s, err := extractive.New(pipelineConfig().Extractive.Method)
	if err != nil {
		return err
	}
	sentences, err := extractive.SummarizeFile(s, args[0], viper.GetInt("sentences"))
	if err != nil {
		return err
	}
	for _, line := range sentences {
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
